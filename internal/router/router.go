package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/mailtocall-api/internal/handler/health"
	promHandler "github.com/jwalitptl/mailtocall-api/internal/handler/prometheus"
	"github.com/jwalitptl/mailtocall-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	health    *health.Handler
	metrics   *promHandler.Handler
	metricsAt string
	authH     Handler
	resources []Handler
}

type RouterConfig struct {
	Mode           string
	CORSConfig     middleware.CORSConfig
	SecurityConfig middleware.SecurityConfig
	MetricsPath    string
}

// NewRouter builds the engine and its global middleware. metrics may be nil
// to disable HTTP metrics and the scrape endpoint.
func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH *health.Handler,
	metrics *promHandler.Handler,
	authH Handler,
	resources []Handler,
	config RouterConfig,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()

	r := &Router{
		engine:    engine,
		auth:      auth,
		health:    healthH,
		metrics:   metrics,
		metricsAt: config.MetricsPath,
		authH:     authH,
		resources: resources,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.SecurityHeaders(config.SecurityConfig),
		middleware.CORS(config.CORSConfig),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}

	return r
}

func (r *Router) Setup() {
	r.health.RegisterRoutes(r.engine)
	if r.metrics != nil && r.metricsAt != "" {
		r.engine.GET(r.metricsAt, r.metrics.Handler())
	}

	api := r.engine.Group("/api/v1")

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	for _, h := range r.resources {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
