package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cvforge-backend/internal/account"
	googleauth "cvforge-backend/internal/auth"
	"cvforge-backend/internal/generations"
	"cvforge-backend/internal/profiles"
	"cvforge-backend/internal/render"
	"cvforge-backend/internal/shared/config"
	"cvforge-backend/internal/shared/metrics"
	"cvforge-backend/internal/shared/server/middleware"
	"cvforge-backend/internal/shared/server/respond"
	"cvforge-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	ProfileHandler    *profiles.Handler
	GenerationHandler *generations.Handler
	RenderHandler     *render.Handler
	AccountHandler    *account.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metricsHandler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(api)
	}
	if deps.RenderHandler != nil {
		deps.RenderHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	return r
}

var (
	metricsOnce     sync.Once
	metricsRegistry *prometheus.Registry
)

// metricsHandler exposes the application collectors. The registry is
// process-global so repeated router construction in tests does not
// re-register collectors.
func metricsHandler() gin.HandlerFunc {
	metricsOnce.Do(func() {
		metricsRegistry = prometheus.NewRegistry()
		metrics.RegisterCollectors(metricsRegistry)
	})
	h := promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
