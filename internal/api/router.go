package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	_ "github.com/taskforge/task-api/docs"
	"github.com/taskforge/task-api/internal/api/handler"
	"github.com/taskforge/task-api/internal/api/middleware"
	"github.com/taskforge/task-api/internal/core/ports"
	"github.com/taskforge/task-api/internal/core/service"
	redisinfra "github.com/taskforge/task-api/internal/infrastructure/db/redis"
	"github.com/taskforge/task-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Repositories are constructed by the caller so index creation can happen
// before the server starts accepting traffic.
func NewRouter(cfg *config.Config, users ports.UserRepository, tasks ports.TaskRepository, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStoreWithConfig(
		echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.RateLimit.Max) / cfg.RateLimit.Window.Seconds()),
			Burst:     int(cfg.RateLimit.Max),
			ExpiresIn: cfg.RateLimit.Window,
		},
	)))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoprometheus.NewMiddleware("taskforge"))

	// --- Dependencies ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisinfra.NewLoginThrottle(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
	authService := service.NewAuthService(users, tokenService, throttle)
	userService := service.NewUserService(users)
	taskService := service.NewTaskService(tasks, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	healthHandler := handler.NewHealthHandler(cfg.Env)
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	auth := middleware.Auth(tokenService, users)

	// --- Routes ---
	g := e.Group("/api")

	g.POST("/signup", authHandler.Signup)
	g.POST("/login", authHandler.Login)

	g.GET("/profile", profileHandler.Get, auth)
	g.PUT("/profile", profileHandler.Update, auth)

	tasksGroup := g.Group("/tasks", auth)
	tasksGroup.GET("", taskHandler.List)
	tasksGroup.POST("", taskHandler.Create)
	tasksGroup.GET("/:id", taskHandler.Get)
	tasksGroup.PUT("/:id", taskHandler.Update)
	tasksGroup.DELETE("/:id", taskHandler.Delete)

	g.GET("/health", healthHandler.Liveness)
	g.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational surfaces (outside /api) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
