package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/api"
	"github.com/junaidrashid-git/revista-gateway/config"
	orderControllers "github.com/junaidrashid-git/revista-gateway/controllers/order"
	"github.com/junaidrashid-git/revista-gateway/events"
	"github.com/junaidrashid-git/revista-gateway/kv"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/routes"
	"github.com/junaidrashid-git/revista-gateway/scheduler"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.LoadConfig()
	config.SetupLogging(cfg)
	log.Info().Msg("✅ Starting storefront gateway...")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid configuration")
	}

	// Token store
	storage, closeStorage := initTokenStore(cfg)
	defer closeStorage()

	// Order events
	publisher, closePublisher := initPublisher(cfg)
	defer closePublisher()

	registry := session.NewRegistry(storage, cfg.SessionTTL, cfg.APITimeout)
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	// Gin setup
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Registry:        registry,
		Client:          client,
		Publisher:       publisher,
		Hub:             orderControllers.NewHub(),
		JWTSecret:       cfg.JWTSecret,
		AdminAPIKey:     cfg.AdminAPIKey,
		LoginRatePerMin: cfg.LoginRatePerMin,
	})

	// Expired sessions are swept on a cron schedule
	sched := scheduler.New()
	if err := sched.AddSessionSweep(cfg.SweepSchedule, sweepAndReport{registry}); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to schedule session sweep")
	}
	sched.Start()
	defer sched.Stop()
	log.Info().Str("at", sched.Next().Format("2006-01-02 15:04:05")).Msg("⏳ Next session sweep")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("🚀 Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Forced shutdown")
	}
}

// initTokenStore opens the store selected by TOKEN_STORE.
func initTokenStore(cfg *config.Config) (kv.Store, func()) {
	switch cfg.TokenStore {
	case config.TokenStorePostgres:
		store, err := kv.OpenPostgres(cfg.DatabaseURL, cfg.SessionTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ DB connection failed")
		}
		log.Info().Msg("🗄️ Token store: postgres")
		return store, func() {}
	case config.TokenStoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := kv.OpenRedis(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Redis connection failed")
		}
		log.Info().Msg("🗄️ Token store: redis")
		return store, func() { _ = store.Close() }
	default:
		log.Warn().Msg("⚠️ Token store: memory, sessions will not survive a restart")
		return kv.NewMemory(), func() {}
	}
}

// initPublisher connects to RabbitMQ when RABBITMQ_URL is set.
func initPublisher(cfg *config.Config) (events.Publisher, func()) {
	if cfg.RabbitMQURL == "" {
		log.Info().Msg("🐇 RABBITMQ_URL not set, order events are not published")
		return events.Noop{}, func() {}
	}
	pool, err := events.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to RabbitMQ")
	}
	return events.NewAMQPPublisher(pool, cfg.RabbitMQQueue), pool.Close
}

// sweepAndReport sweeps the registry and updates the live sessions gauge.
type sweepAndReport struct {
	registry *session.Registry
}

func (s sweepAndReport) Sweep(ctx context.Context) int {
	n := s.registry.Sweep(ctx)
	middleware.SetLiveSessions(len(s.registry.List()))
	return n
}
