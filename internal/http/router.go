package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/devsync89/jobportal/internal/auth"
	"github.com/devsync89/jobportal/internal/cache"
	"github.com/devsync89/jobportal/internal/config"
	"github.com/devsync89/jobportal/internal/http/handlers"
	"github.com/devsync89/jobportal/internal/http/middlewares"
	"github.com/devsync89/jobportal/internal/observability"
	"github.com/devsync89/jobportal/internal/pipeline"
	"github.com/devsync89/jobportal/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires repositories, the tracking engine and every route.
func NewRouter(log *slog.Logger, cfg config.Config, pool *pgxpool.Pool, redisClient *cache.Client) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware([]string{"http://localhost:3000"}))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware("jobportal-api"))
	r.Use(prom.GinHandleMiddleware())

	// health + metrics
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// repositories
	candidatesRepo := postgres.NewCandidatesRepo(pool, prom)
	interviewsRepo := postgres.NewInterviewsRepo(pool, prom)
	jobsRepo := postgres.NewJobsRepo(pool, prom)
	usersRepo := postgres.NewUsersRepo(pool)
	refreshRepo := postgres.NewRefreshTokensRepo(pool)

	// scheduling writes go through the reminder-enqueuing decorator
	schedulingRepo := postgres.NewInterviewsWithReminders(interviewsRepo, jobsRepo)

	engine := pipeline.New(pipeline.Config{
		AllowTerminalOverride: cfg.AllowTerminalOverride,
	}, candidatesRepo, schedulingRepo).WithObserver(prom.ObservePipeline)

	statsCache := cache.NewStatsCache(redisClient, 30*time.Second)

	// auth
	jwtManager := auth.NewManager(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLDays)*24*time.Hour,
	)

	authMW := middlewares.NewAuthMiddleware(jwtManager)
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager, refreshRepo, cfg)

	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)

	authGroup := r.Group("/auth", middlewares.RequireJSON())
	{
		authGroup.POST("/signup", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.SignUp)
		authGroup.POST("/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// handlers
	candidatesHandler := handlers.NewCandidatesHandler(candidatesRepo, interviewsRepo, engine, statsCache)
	interviewsHandler := handlers.NewInterviewsHandler(interviewsRepo, engine, statsCache)
	usersHandler := handlers.NewUsersHandler(usersRepo)
	statsHandler := handlers.NewStatsHandler(candidatesRepo, statsCache)
	adminJobsHandler := handlers.NewAdminJobsHandler(jobsRepo)

	requireAuth := authMW.RequireAuth()

	candidates := r.Group("/candidates", requireAuth)
	{
		// own record first so it is not shadowed by :id
		candidates.GET("/me", candidatesHandler.Me)

		manage := authMW.RequireAction(pipeline.ActionManageCandidates)

		candidates.POST("", middlewares.RequireJSON(), manage, candidatesHandler.Create)
		candidates.GET("", manage, candidatesHandler.List)
		candidates.GET("/:id", manage, candidatesHandler.GetByID)
		candidates.PUT("/:id", middlewares.RequireJSON(), manage, candidatesHandler.Update)
		candidates.DELETE("/:id", manage, candidatesHandler.Delete)

		// engine re-checks the role; the middleware only short-circuits
		candidates.POST("/:id/status", middlewares.RequireJSON(), candidatesHandler.OverrideStatus)

		candidates.POST("/import", authMW.RequireAction(pipeline.ActionImportCandidates), candidatesHandler.Import)
		candidates.GET("/phones/export", authMW.RequireAction(pipeline.ActionExportPhones), candidatesHandler.ExportPhones)
		candidates.POST("/selection/range", middlewares.RequireJSON(), manage, candidatesHandler.ApplyRange)
	}

	interviews := r.Group("/interviews", requireAuth)
	{
		view := authMW.RequireAction(pipeline.ActionManageCandidates)

		interviews.POST("", middlewares.RequireJSON(), interviewsHandler.Schedule)
		interviews.POST("/bulk", middlewares.RequireJSON(), interviewsHandler.BulkSchedule)
		interviews.GET("", view, interviewsHandler.List)
		interviews.GET("/:id", view, interviewsHandler.GetByID)
		interviews.POST("/:id/complete", interviewsHandler.Complete)
		interviews.POST("/:id/result", middlewares.RequireJSON(), interviewsHandler.RecordResult)
		interviews.POST("/:id/cancel", interviewsHandler.Cancel)
	}

	users := r.Group("/users", requireAuth)
	{
		users.GET("/me/profile", usersHandler.MyProfile)
		users.PUT("/me/profile", middlewares.RequireJSON(), usersHandler.UpdateMyProfile)

		manageUsers := authMW.RequireAction(pipeline.ActionManageUsers)

		users.GET("", manageUsers, usersHandler.List)
		users.PUT("/:id/role", middlewares.RequireJSON(), manageUsers, usersHandler.UpdateRole)
	}

	admin := r.Group("/admin", requireAuth, authMW.RequireAction(pipeline.ActionManageUsers))
	{
		admin.GET("/stats", statsHandler.CandidateStats)
		admin.GET("/jobs", adminJobsHandler.List)
		admin.GET("/jobs/:id", adminJobsHandler.GetByID)
		admin.POST("/jobs/:id/retry", adminJobsHandler.Retry)
	}

	return r
}
