package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kenkai/internal/api"
	"kenkai/internal/chat"
	"kenkai/internal/config"
	"kenkai/internal/database"
	"kenkai/internal/domain"
	"kenkai/internal/events"
	"kenkai/internal/logging"
	"kenkai/internal/mailer"
	"kenkai/internal/metrics"
	"kenkai/internal/repository"
	"kenkai/internal/service"
	"kenkai/internal/storage"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	store, cleanup, err := initStore(cfg, &logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	chatStates := initChatStates(cfg, redisClient, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus()

	sender := mailer.NewSMTPSender(cfg.SMTP, &logger)
	dispatcher := mailer.NewDispatcher(sender, &logger)
	dispatcher.Subscribe(eventBus)
	go dispatcher.Start(ctx)

	bookings := service.NewBookingService(store, eventBus, &logger)
	leads := service.NewLeadService(store, eventBus, &logger)
	advisor := chat.NewAdvisor(chatStates, &logger)

	httpServer := api.NewHTTPServer(cfg, bookings, leads, advisor, &logger)

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// store объединяет обе стороны хранилища, которые реализует каждый бэкенд
type store interface {
	domain.BookingStore
	domain.LeadStore
	SetSlots(slots []string)
}

func initStore(cfg *config.Config, logger *zerolog.Logger) (store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.NewDB(cfg.Database.Path, logger)
		if err != nil {
			logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
			return nil, nil, err
		}
		db.SetSlots(cfg.Booking.TimeSlots)
		return db, func() { _ = db.Close() }, nil

	case config.DriverFile:
		fs, err := storage.NewFileStore(cfg.Database.Dir)
		if err != nil {
			logger.Error().Err(err).Str("db_dir", cfg.Database.Dir).Msg("init file store")
			return nil, nil, err
		}
		fs.SetSlots(cfg.Booking.TimeSlots)
		return fs, nil, nil

	case config.DriverMemory:
		ms := storage.NewMemoryStore()
		ms.SetSlots(cfg.Booking.TimeSlots)
		logger.Warn().Msg("memory store selected, data will not survive a restart")
		return ms, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
	}
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)

	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

func initChatStates(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.ChatStateRepository {
	ttl := time.Duration(cfg.Chat.StateTTLHours) * time.Hour
	memory := repository.NewMemoryChatRepository(ttl)
	if redisClient == nil {
		return memory
	}

	primary := repository.NewRedisChatRepository(redisClient, ttl)
	return repository.NewFailoverChatRepository(primary, memory, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
