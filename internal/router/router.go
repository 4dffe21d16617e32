package router

import (
	"math/rand"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/config"
	"github.com/bernardesrodrigoc/explotrack/internal/handler"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/middleware"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"
	"github.com/bernardesrodrigoc/explotrack/internal/service"
	"github.com/bernardesrodrigoc/explotrack/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, clock infra.Clock) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	tolerancia, err := decimal.NewFromString(cfg.CaixaTolerancia)
	if err != nil {
		tolerancia = decimal.NewFromFloat(0.50)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	filialRepo := repository.NewFilialRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	balancoRepo := repository.NewBalancoRepository(db)
	valeRepo := repository.NewValeRepository(db)
	metaRepo := repository.NewMetaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, clock, cfg.JWTSecret, cfg.JWTExpirationHours)
	produtoSvc := service.NewProdutoService(produtoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	filialSvc := service.NewFilialService(filialRepo)
	vendaSvc := service.NewVendaService(vendaRepo, produtoRepo, clienteRepo, dispatcher, clock)
	caixaSvc := service.NewCaixaService(caixaRepo, vendaRepo, clienteRepo, clock, tolerancia)
	comissaoSvc := service.NewComissaoService(vendaRepo, metaRepo, valeRepo, usuarioRepo)
	metaSvc := service.NewMetaService(metaRepo, valeRepo, usuarioRepo, clock)
	balancoSvc := service.NewBalancoService(
		balancoRepo, produtoRepo, clock, cfg.BalancoScope,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	vendasH := handler.NewVendasHandler(vendaSvc, clock)
	caixaH := handler.NewCaixaHandler(caixaSvc, clock)
	comissaoH := handler.NewComissaoHandler(comissaoSvc, clock, cfg.PDFStoragePath)
	balancoH := handler.NewBalancoHandler(balancoSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	gestaoH := handler.NewGestaoHandler(metaSvc, filialSvc, clock)
	relatoriosH := handler.NewRelatoriosHandler(vendaSvc, produtoSvc, clock)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("admin", "gerente", "vendedora")
	gestores := middleware.RequireRole("admin", "gerente")
	admin := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/register", admin, authH.Register)
		v1.GET("/auth/me", todos, authH.Me)

		v1.POST("/vendas", todos, vendasH.Registrar)
		v1.GET("/vendas", todos, vendasH.Listar)
		v1.GET("/vendas/:id", todos, vendasH.Buscar)
		v1.POST("/vendas/:id/estorno", gestores, vendasH.Estornar)

		v1.POST("/caixa/abrir", todos, caixaH.Abrir)
		v1.POST("/caixa/movimentos", gestores, caixaH.Movimento)
		v1.POST("/caixa/fechar", gestores, caixaH.Fechar)
		v1.GET("/caixa/snapshot", todos, caixaH.Snapshot)
		v1.GET("/caixa/sessao", todos, caixaH.Sessao)
		v1.POST("/caixa/pagamentos-divida", todos, caixaH.PagamentoDivida)

		v1.GET("/comissoes", gestores, comissaoH.CalcularFilial)
		v1.GET("/comissoes/:id", todos, comissaoH.Calcular)
		v1.GET("/comissoes/relatorio", gestores, comissaoH.Relatorio)
		v1.PUT("/comissoes/configuracao", admin, gestaoH.SalvarConfiguracao)
		v1.GET("/comissoes/configuracao", gestores, gestaoH.BuscarConfiguracao)

		v1.GET("/relatorios/vendas-por-vendedor", gestores, relatoriosH.VendasPorVendedor)
		v1.GET("/relatorios/valor-estoque", gestores, relatoriosH.ValorEstoque)

		v1.POST("/balancos", gestores, balancoH.Iniciar)
		v1.GET("/balancos/em-andamento", todos, balancoH.EmAndamento)
		v1.GET("/balancos/:id", todos, balancoH.Buscar)
		v1.POST("/balancos/:id/contagens", todos, balancoH.Contagem)
		v1.POST("/balancos/:id/concluir", gestores, balancoH.Concluir)

		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/:id", todos, produtosH.Buscar)
		prods := v1.Group("/produtos", gestores)
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
		}

		v1.GET("/clientes", todos, clientesH.Listar)
		v1.GET("/clientes/:id", todos, clientesH.Buscar)
		v1.POST("/clientes", todos, clientesH.Criar)
		v1.PUT("/clientes/:id", gestores, clientesH.Atualizar)

		v1.POST("/metas", gestores, gestaoH.CriarMeta)
		v1.GET("/metas", gestores, gestaoH.ListarMetas)
		v1.POST("/vales", gestores, gestaoH.CriarVale)
		v1.GET("/vales", gestores, gestaoH.ListarVales)

		v1.GET("/filiais", todos, gestaoH.ListarFiliais)
		filiais := v1.Group("/filiais", admin)
		{
			filiais.POST("", gestaoH.CriarFilial)
			filiais.PUT("/:id", gestaoH.AtualizarFilial)
			filiais.DELETE("/:id", gestaoH.DesativarFilial)
		}
	}

	return r
}
