// @title         jobboard API
// @version       1.0
// @description   Front-tier service of the job board: listing, résumé matching, applications, news and the chat assistant.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/artem13815/jobboard/docs"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/artem13815/jobboard/api/http"
	"github.com/artem13815/jobboard/api/http/handlers"
	"github.com/artem13815/jobboard/pkg/aiservice"
	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/assistant"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/backend"
	"github.com/artem13815/jobboard/pkg/cache"
	"github.com/artem13815/jobboard/pkg/config"
	"github.com/artem13815/jobboard/pkg/health"
	"github.com/artem13815/jobboard/pkg/health/checkers"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/match"
	"github.com/artem13815/jobboard/pkg/news"
	"github.com/artem13815/jobboard/pkg/repository/memory"
	pgrepo "github.com/artem13815/jobboard/pkg/repository/postgres"
	"github.com/artem13815/jobboard/pkg/resume"
	"github.com/artem13815/jobboard/pkg/scheduler"
	"github.com/artem13815/jobboard/pkg/security/jwt"
	"github.com/artem13815/jobboard/pkg/storage/postgres"
)

// sessionStore is what the server needs from a session repository.
type sessionStore interface {
	auth.SessionStore
	scheduler.SessionPurger
}

func main() {
	// Load configuration from env/.env
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Upstreams
	backendClient := backend.New(cfg.BackendURL, cfg.BackendTimeout)
	aiClient := aiservice.New(cfg.AIServiceURL, cfg.AIAuthSecret, cfg.AIRatePerSec, cfg.AITimeout)

	// Cache is optional: an empty or unreachable REDIS_URL bypasses it.
	redisCache := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL, logger)
	defer redisCache.Close()

	readinessCheckers := []health.Checker{checkers.NewPingChecker("backend", backendClient, 2*time.Second)}
	if redisCache.Enabled() {
		readinessCheckers = append(readinessCheckers, checkers.NewPingChecker("redis", redisCache, time.Second))
	}

	// Sessions live in PostgreSQL when DATABASE_URL is set, in memory otherwise.
	var sessions sessionStore
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		sessions = pgrepo.NewSessionRepository(pool)
		readinessCheckers = append(readinessCheckers, checkers.NewPingChecker("postgres", pool, time.Second))
	} else {
		logger.Println("DATABASE_URL не задан: sessions are kept in memory")
		sessions = memory.NewSessionRepository()
	}

	// Domain services
	jobsUC := job.NewService(backendClient, redisCache, cfg.JobsPageSize, logger)
	appsUC := application.NewService(backendClient, jobsUC)
	matchUC := match.NewService(backendClient, cfg.MatchMinPercentage, logger)
	resumeSvc := resume.NewAnalysisService(aiClient, matchUC, resume.NewTracker(), logger)
	newsUC := news.NewService(backendClient, redisCache, cfg.NewsPageSize, logger)
	chatUC := assistant.NewService(aiClient, logger)

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer)
	authUC := auth.NewAuthService(
		backendClient,
		sessions,
		jwtGen,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		resumeSvc.Forget,
		chatUC.Reset,
	)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer, authUC)

	app := fiber.New(fiber.Config{
		AppName: "jobboard",
		// résumé uploads go up to resume.MaxUploadBytes plus form overhead
		BodyLimit: resume.MaxUploadBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlog.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Register routes
	http.Register(app, http.Handlers{
		Auth:         handlers.NewAuthHandler(authUC),
		Health:       handlers.NewHealthHandler(health.NewService(readinessCheckers...)),
		Jobs:         handlers.NewJobHandler(jobsUC),
		Applications: handlers.NewApplicationHandler(appsUC),
		Resume:       handlers.NewResumeHandler(resumeSvc),
		News:         handlers.NewNewsHandler(newsUC),
		Assistant:    handlers.NewAssistantHandler(chatUC),
	}, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Background jobs
	sched := scheduler.New(jobsUC, cfg.CacheWarmSpec, sessions, cfg.SessionPurgeSpec, logger, resumeSvc.Forget, chatUC.Reset)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	go func() {
		<-ctx.Done()
		logger.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	// Start server
	port := cfg.Port
	logger.Printf("HTTP server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
