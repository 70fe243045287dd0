package main

import (
	"crypto/tls"
	"strings"

	"github.com/aurumascend/raisesignal-backend/config"
	"github.com/aurumascend/raisesignal-backend/handlers"
	"github.com/aurumascend/raisesignal-backend/logger"
	"github.com/aurumascend/raisesignal-backend/router"
	"github.com/aurumascend/raisesignal-backend/services"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client with TLS in production. Redis only backs the
	// submission rate limiter; the limiter fails open when it is down.
	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.IsProduction() || cfg.Redis.UseTLS {
		host := cfg.Redis.Address
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}
		redisOptions.TLSConfig = &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)

	// Services
	emailService := services.NewEmailService(&cfg.Email, cfg.Server.SiteBaseURL)
	healthService := services.NewHealthService(redisClient, &cfg.Email, cfg.Server.Version)

	// Handlers
	submissionHandler := handlers.NewSubmissionHandler(emailService)
	healthHandler := handlers.NewHealthHandler(healthService)

	// Router setup
	r := router.SetupRouter(router.Dependencies{
		Config:            cfg,
		SubmissionHandler: submissionHandler,
		HealthHandler:     healthHandler,
		RedisClient:       redisClient,
		Logger:            log,
	})

	if len(cfg.Server.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			log.Fatalf("Failed to set trusted proxies: %v", err)
		}
	}

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
