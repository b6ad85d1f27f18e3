package app

import (
	"log/slog"
	"net/http"
	"time"

	_ "productivity/docs"
	"productivity/internal/auth"
	"productivity/internal/config"
	dom "productivity/internal/domain"
	"productivity/internal/dto"
	"productivity/internal/handlers"
	"productivity/internal/metrics"
	"productivity/internal/repo"
	"productivity/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

const healthMessage = "Índia App Backend funcionando!"

// Deps is everything the router needs. Cache may be nil.
type Deps struct {
	Config   config.Config
	Store    repo.Store
	Cache    service.ListCache
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

// NewRouter builds the engine with middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Config.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(recovery(d.Logger), requestLogger(d.Logger))
	if d.Registry != nil {
		r.Use(metrics.New(d.Registry).Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Registry)))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", d.identityHeader()},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, d)
	return r
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, d Deps) {
	r.GET("/", rootHandler(d.Config))
	r.GET("/version", versionHandler(d.Config))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api")
	api.GET("/health", healthHandler())

	protected := api.Group("", auth.RequireUserID(d.identityHeader()))
	for _, res := range dom.All() {
		svc := service.NewResourceService(res, d.Store, d.Cache)
		handlers.Register(protected, res.Name, handlers.NewResourceHandler(svc, d.Logger.With("resource", res.Name)))
	}
}

func (d Deps) identityHeader() string {
	if d.Config.HTTP.IdentityHeader == "" {
		return auth.DefaultHeader
	}
	return d.Config.HTTP.IdentityHeader
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		names := make([]string, 0, len(dom.All()))
		for _, res := range dom.All() {
			names = append(names, res.Name)
		}
		c.JSON(http.StatusOK, gin.H{
			"service":   "Productivity API",
			"version":   cfg.App.Version,
			"env":       cfg.App.Env,
			"docs":      "/swagger/index.html",
			"openapi":   "/swagger-doc.json",
			"health":    "/api/health",
			"api":       "/api",
			"resources": names,
		})
	}
}

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", App: healthMessage})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error(), Code: handlers.CodeInternal})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
