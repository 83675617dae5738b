package http

import (
	"time"

	"todo_api/internal/config"
	"todo_api/internal/http/handlers"
	"todo_api/internal/http/middleware"
	"todo_api/internal/service"
	"todo_api/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// Deps are the collaborators the routes are built from. Redis is optional;
// without it rate limiting is per process.
type Deps struct {
	Config   *config.Config
	Resolver *service.Resolver
	Hub      *ws.Hub
	Health   *handlers.HealthHandler
	Redis    *redis.Client
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	r.Use(cors.New(corsConfig(deps.Config.AllowedOrigin)))

	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config
	h := handlers.NewHandler(deps.Resolver, deps.Hub, cfg.DefaultUsername)

	// Health checks (no rate limiting)
	r.GET("/health", deps.Health.Health)
	r.GET("/healthz", deps.Health.Liveness)
	r.GET("/readyz", deps.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := rateLimiter(deps.Redis, cfg.APIRateLimit, cfg.APIRateWindow)

	v1 := r.Group("/api/v1")
	v1.Use(limiter)
	registerAPIRoutes(v1, h)

	// Legacy /api routes
	api := r.Group("/api")
	api.Use(limiter)
	api.GET("/health", deps.Health.Health)
	registerAPIRoutes(api, h)

	// Task event feed
	r.GET("/ws", ws.HandleWS(deps.Hub, cfg.DefaultUsername, cfg.AllowedOrigin))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	// Users
	api.POST("/users", h.CreateUser)

	// Tasks
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/task/:id", h.GetTask)
	api.PUT("/task/:id", h.UpdateTask)
	api.DELETE("/task/:id", h.DeleteTask)

	// Projects
	api.GET("/projects", h.ListProjects)
	api.POST("/projects", h.CreateProject)
	api.GET("/projects/:name", h.GetProject)
}

func rateLimiter(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	if client != nil {
		return middleware.RedisRateLimit(client, limit, window)
	}
	return middleware.SimpleRateLimit(limit, window)
}

func corsConfig(allowedOrigin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Username"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if allowedOrigin == "" || allowedOrigin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{allowedOrigin}
	}
	return cfg
}
