package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ibovespa/catalog-api/internal/api/handler"
	"github.com/ibovespa/catalog-api/internal/api/middleware"
	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/service"
	"github.com/ibovespa/catalog-api/internal/infrastructure/config"
	mongodb "github.com/ibovespa/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ibovespa/catalog-api/internal/infrastructure/db/redis"
	"github.com/ibovespa/catalog-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the ingest dispatcher, which the caller must Start.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	registrationRepo := mongodb.NewRegistrationRepository(db)

	// --- Services ---
	hasher := service.NewPasswordHasher()
	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, codec, log)
	guard := service.NewAccessGuard(codec, userRepo)
	categoryService := service.NewCategoryService(categoryRepo, log)
	registrationService := service.NewRegistrationService(
		registrationRepo, categoryRepo, redisdb.NewIngestDedup(rdb), log)
	modelService := service.NewModelService(registrationRepo, redisdb.NewModelStore(rdb), log)

	dispatcher := queue.NewDispatcher(0, registrationService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, userRepo)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	registrationHandler := handler.NewRegistrationHandler(registrationService, dispatcher)
	modelHandler := handler.NewModelHandler(modelService)

	authRequired := middleware.Auth(guard)
	adminOnly := middleware.RequireRole(roleRepo, domain.RoleAdmin)

	// --- API routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/token", authHandler.Token)
	v1.GET("/users", authHandler.ListUsers, authRequired, adminOnly)

	categories := v1.Group("/categories", authRequired)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)

	registrations := v1.Group("/registrations", authRequired)
	registrations.GET("", registrationHandler.List)
	registrations.POST("", registrationHandler.Create)
	registrations.POST("/batch", registrationHandler.CreateBatch)

	model := v1.Group("/model", authRequired)
	model.POST("/train", modelHandler.Train, adminOnly)
	model.POST("/predict", modelHandler.Predict)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}
