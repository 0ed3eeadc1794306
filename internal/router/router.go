package router

import (
	"net/http"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/config"
	"mrpestoque/internal/handler"
	"mrpestoque/internal/infra"
	"mrpestoque/internal/metrics"
	"mrpestoque/internal/middleware"
	"mrpestoque/internal/mrp"
	"mrpestoque/internal/repository"
	"mrpestoque/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the infrastructure handles built by the composition root.
type Deps struct {
	DB      *gorm.DB      // nil with the memory store
	Redis   *redis.Client // nil when the snapshot cache is disabled
	Repo    repository.ComponenteRepository
	Metrics *metrics.Metrics
	Limiter *middleware.RateLimiter
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, d Deps) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := mrp.NewEngine(mrp.BOMPadrao())
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global middleware chain (order matters): CORS answers preflight before
	// anything else can reject it.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.ErrorHandler())
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware())
	}

	// ── Services ─────────────────────────────────────────────────────────────
	storeCB := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: cfg.StoreFailureThreshold,
		OpenTimeout:      cfg.StoreOpenTimeout,
		IsFailure:        service.IsStoreFailure,
	})
	cache := service.NewSnapshotCache(d.Redis, cfg.SnapshotCacheTTL)
	estoqueSvc := service.NewEstoqueService(d.Repo, storeCB, cache, d.Metrics)
	mrpSvc := service.NewMRPService(engine, estoqueSvc, d.Metrics)

	// ── Handlers ─────────────────────────────────────────────────────────────
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	mrpH := handler.NewMRPHandler(mrpSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(d.DB, d.Redis, storeCB))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/estoque", estoqueH.Listar)
		api.POST("/estoque", estoqueH.Criar)
		api.GET("/estoque/:id", estoqueH.ObterPorID)
		api.PUT("/estoque/:id", estoqueH.AtualizarEstoque)
		api.DELETE("/estoque/:id", estoqueH.Excluir)
		api.GET("/estoque/:id/movimentos", estoqueH.ListarMovimentos)

		api.POST("/mrp", mrpH.Calcular)
		api.GET("/mrp/bom", mrpH.BOM)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierror.New("Endpoint não encontrado."))
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, apierror.New("Método não permitido."))
	})

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}
