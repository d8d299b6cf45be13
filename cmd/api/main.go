package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"jobport/internal/app"
	"jobport/internal/config"
	"jobport/internal/database"
	apphttp "jobport/internal/http"
	"jobport/internal/http/handlers"
	"jobport/internal/http/metrics"
	httpmw "jobport/internal/http/middleware"
	"jobport/internal/http/response"
	"jobport/internal/observability"
	"jobport/internal/repository/postgres"
	"jobport/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	ledger := postgres.NewCapacityLedger(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db, ledger)
	profileRepo := postgres.NewApplicantProfileRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	jobService := app.NewJobService(jobRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, profileRepo, analyticsRepo)
	profileService := app.NewProfileService(profileRepo)
	ratingService := app.NewRatingService(ratingRepo, applicationRepo)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = httpmw.NewRedisLimiter(client)
		logger.Info("rate limiting backed by redis", "addr", cfg.RedisAddr)
	}

	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	profileHandler := handlers.NewProfileHandler(profileService)
	ratingHandler := handlers.NewRatingHandler(ratingService, limiter)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		ProfileHandler:     profileHandler,
		RatingHandler:      ratingHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     authMiddleware,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
