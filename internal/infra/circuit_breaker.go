package infra

import (
	"errors"
	"sync"
	"time"
)

// CircuitBreaker guards the SMTP relay used by the receipt worker. When the
// relay starts failing, calls fast-fail instead of holding worker goroutines
// hostage on timeouts; after a cooldown a single probe decides whether to
// resume.
//
// States: fechado (normal) → aberto (fast-fail) → meio-aberto (probing).

type cbEstado int

const (
	cbFechado cbEstado = iota
	cbAberto
	cbMeioAberto
)

func (e cbEstado) String() string {
	switch e {
	case cbFechado:
		return "fechado"
	case cbAberto:
		return "aberto"
	case cbMeioAberto:
		return "meio-aberto"
	}
	return "desconhecido"
}

// ErrCircuitOpen is returned while the breaker is refusing calls.
var ErrCircuitOpen = errors.New("circuito aberto: serviço externo indisponível")

type CircuitBreakerConfig struct {
	// FailureThreshold is how many consecutive failures trip the breaker.
	FailureThreshold int
	// SuccessThreshold is how many probe successes close it again.
	SuccessThreshold int
	// OpenTimeout is the cooldown before the first probe.
	OpenTimeout time.Duration
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	mu          sync.Mutex
	estado      cbEstado
	falhas      int
	sucessos    int
	ultimaFalha time.Time
	cfg         CircuitBreakerConfig
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{estado: cbFechado, cfg: cfg}
}

// Execute runs fn unless the breaker is open. The open → meio-aberto
// transition happens lazily on the first call after the cooldown.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.estado == cbAberto {
		if time.Since(cb.ultimaFalha) < cb.cfg.OpenTimeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.estado = cbMeioAberto
		cb.sucessos = 0
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registrarFalha()
		return err
	}
	cb.registrarSucesso()
	return nil
}

// Estado exposes the current state for logs and health checks.
func (cb *CircuitBreaker) Estado() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.estado == cbAberto && time.Since(cb.ultimaFalha) >= cb.cfg.OpenTimeout {
		return cbMeioAberto.String()
	}
	return cb.estado.String()
}

func (cb *CircuitBreaker) registrarFalha() {
	cb.falhas++
	cb.ultimaFalha = time.Now()

	switch cb.estado {
	case cbFechado:
		if cb.falhas >= cb.cfg.FailureThreshold {
			cb.estado = cbAberto
			cb.sucessos = 0
		}
	case cbMeioAberto:
		cb.estado = cbAberto
		cb.falhas = 0
	}
}

func (cb *CircuitBreaker) registrarSucesso() {
	switch cb.estado {
	case cbFechado:
		cb.falhas = 0
	case cbMeioAberto:
		cb.sucessos++
		if cb.sucessos >= cb.cfg.SuccessThreshold {
			cb.estado = cbFechado
			cb.falhas = 0
			cb.sucessos = 0
		}
	}
}
