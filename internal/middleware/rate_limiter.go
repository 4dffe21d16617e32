package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// janela is one IP's counting window. Windows are fixed-length and reset on
// first hit after expiry.
type janela struct {
	mu     sync.Mutex
	hits   int
	expira time.Time
}

// contador is a per-IP hit counter shared by the login and general limiters.
type contador struct {
	mu      sync.Mutex
	porIP   map[string]*janela
	limite  int
	duracao time.Duration
}

func newContador(limite int, duracao time.Duration) *contador {
	return &contador{
		porIP:   make(map[string]*janela),
		limite:  limite,
		duracao: duracao,
	}
}

// permitir counts one hit and reports whether it stayed under the limit.
func (c *contador) permitir(ip string) (bool, time.Time) {
	c.mu.Lock()
	j, ok := c.porIP[ip]
	if !ok {
		j = &janela{}
		c.porIP[ip] = j
	}
	c.mu.Unlock()

	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	if now.After(j.expira) {
		j.hits = 0
		j.expira = now.Add(c.duracao)
	}
	j.hits++
	return j.hits <= c.limite, j.expira
}

// purgar drops expired windows so IPs that never return don't accumulate.
func (c *contador) purgar(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for ip, j := range c.porIP {
		j.mu.Lock()
		expirada := now.After(j.expira)
		j.mu.Unlock()
		if expirada {
			delete(c.porIP, ip)
			n++
		}
	}
	return n
}

var loginContador = newContador(20, time.Minute)

// LoginRateLimiter caps login attempts at 20 per minute per IP, keeping
// credential stuffing slow without locking out a shared store terminal.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := loginContador.permitir(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New(apierror.CodeConflict, "Muitas tentativas de login. Tente novamente em 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter applied to the whole API.
func RateLimiter(limite int, duracao time.Duration) gin.HandlerFunc {
	ct := newContador(limite, duracao)
	registrarPurga(ct)
	return func(c *gin.Context) {
		ok, expira := ct.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", expira.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New(apierror.CodeConflict, "Muitas solicitações. Tente novamente em instantes."))
			return
		}
		c.Next()
	}
}

// ── Purge loop ───────────────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

var (
	purgaMu    sync.Mutex
	contadores = []*contador{loginContador}
	purgaAtiva bool
)

func registrarPurga(ct *contador) {
	purgaMu.Lock()
	defer purgaMu.Unlock()
	contadores = append(contadores, ct)
	if !purgaAtiva {
		purgaAtiva = true
		go purgaLoop()
	}
}

func purgaLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		total := 0
		purgaMu.Lock()
		for _, ct := range contadores {
			total += ct.purgar(now)
		}
		purgaMu.Unlock()
		if total > 0 {
			log.Debug().Int("janelas_removidas", total).Msg("rate limiter: purga de janelas expiradas")
		}
	}
}
