package routes

import (
	"context"

	"social-service/docs"
	"social-service/internal/api/handlers"
	"social-service/internal/api/middleware"
	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/repositories/postgres"
	"social-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies are the runtime collaborators of the HTTP layer. RateLimiter and Clock
// are optional.
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	RateLimiter services.RateLimiter
	Clock       services.TimeProvider
	// HealthChecks are pinged by /healthz in addition to the database.
	HealthChecks map[string]handlers.Pinger
}

type Router struct {
	engine        *gin.Engine
	cfg           *config.Config
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	friendHandler *handlers.FriendHandler
	healthHandler *handlers.HealthHandler
	rateLimitMW   *middleware.RateLimitMiddleware
	authMW        *middleware.AuthMiddleware
}

func NewRouter(deps Dependencies) *Router {
	cfg := deps.Config
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// Add middlewares
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.LogApi())
	engine.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	clock := deps.Clock
	if clock == nil {
		clock = services.RealTimeProvider{}
	}
	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = services.NewLocalRateLimiter()
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(deps.DB)
	friendStore := services.NewGormFriendStore(deps.DB, cfg.Database.TxRetries)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, clock)
	userService := services.NewUserService(userRepo, tokenService)
	friendService := services.NewFriendService(friendStore, services.FriendPolicy{
		RequestLimit:  cfg.Friend.RequestLimit,
		RequestWindow: cfg.Friend.RequestWindow,
		Resolver:      services.ResolverPolicy(cfg.Friend.ResolverPolicy),
	}, clock)

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			return database.Ping(ctx, deps.DB)
		}),
	}
	for name, check := range deps.HealthChecks {
		checks[name] = check
	}

	return &Router{
		engine:        engine,
		cfg:           cfg,
		authHandler:   handlers.NewAuthHandler(userService),
		userHandler:   handlers.NewUserHandler(userService),
		friendHandler: handlers.NewFriendHandler(friendService),
		healthHandler: handlers.NewHealthHandler(checks),
		rateLimitMW:   middleware.NewRateLimitMiddleware(limiter),
		authMW:        middleware.NewAuthMiddleware(tokenService),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", r.healthHandler.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = "/api/v1"
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limit, window := r.cfg.Server.RateLimit, r.cfg.Server.RateWindow
	api := r.engine.Group("/api/v1")

	// Public routes (no authentication required)
	authRoutes := api.Group("/auth")
	authRoutes.Use(r.rateLimitMW.RateLimitIP("auth", limit/2, window))
	{
		authRoutes.POST("/signup", r.authHandler.Signup)
		authRoutes.POST("/login", r.authHandler.Login)
		authRoutes.POST("/refresh", r.authHandler.Refresh)
	}

	// Authenticated routes
	auth := api.Group("")
	auth.Use(r.authMW.RequireAuth())
	{
		users := auth.Group("/users")
		users.Use(r.rateLimitMW.RateLimit("users", limit, window))
		{
			users.GET("/profile", r.userHandler.GetProfile)
			users.POST("/name", r.userHandler.UpdateName)
			users.GET("/search", r.userHandler.SearchUsers)
		}

		friends := auth.Group("/friends")
		friends.Use(r.rateLimitMW.RateLimit("friends", limit, window))
		{
			friends.GET("", r.friendHandler.ListFriends)
			friends.POST("/requests", r.friendHandler.SendRequest)
			friends.POST("/requests/accept", r.friendHandler.AcceptRequest)
			friends.POST("/requests/reject", r.friendHandler.RejectRequest)
			friends.GET("/requests/pending", r.friendHandler.ListPending)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
