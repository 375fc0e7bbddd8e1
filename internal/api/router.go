package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learnc/course-portal/internal/api/handler"
	"github.com/learnc/course-portal/internal/api/middleware"
	"github.com/learnc/course-portal/internal/core/service"
	mongodb "github.com/learnc/course-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/learnc/course-portal/internal/infrastructure/db/redis"
	"github.com/learnc/course-portal/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("courseportal"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	accountService := service.NewAccountService(accountRepo, log)
	sessionStore := redisstore.NewSessionStore(rdb)
	sessionGate := service.NewSessionService(accountService, accountRepo, sessionStore, cfg.SessionSecret, cfg.SessionTTL, log)
	catalog := service.NewCatalogService()

	authHandler := handler.NewAuthHandler(accountService, sessionGate, cfg.SessionTTL)
	courseHandler := handler.NewCourseHandler(catalog)

	e.Use(middleware.LoadUser(sessionGate))

	// --- Auth routes ---
	e.GET("/register", authHandler.ShowRegister, middleware.RequireGuest)
	e.POST("/register", authHandler.Register, middleware.RequireGuest)
	e.GET("/login", authHandler.ShowLogin, middleware.RequireGuest)
	e.POST("/login", authHandler.Login, middleware.RequireGuest)
	e.GET("/logout", authHandler.Logout, middleware.RequireUser)

	// --- Catalog routes ---
	e.GET("/", courseHandler.Index)
	e.GET("/dashboard", courseHandler.Dashboard, middleware.RequireUser)
	e.GET("/parts/:id", courseHandler.PartDetail, middleware.RequireUser)
	e.POST("/parts/:id/start", courseHandler.StartPart, middleware.RequireUser)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
