package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"jandervidros/internal/config"
	"jandervidros/internal/infra"
	"jandervidros/internal/repository"
	"jandervidros/internal/router"
	"jandervidros/internal/service"
	"jandervidros/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.SetupLogger(infra.LogOptions{Level: cfg.LogLevel, File: cfg.LogFile, Production: cfg.IsProduction()})

	db, err := infra.NewDatabase(infra.DBOptions{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DatabaseURL,
		Debug:        cfg.DBDebug,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	if err := infra.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	store := repository.NewStore(db)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seeded, err := service.NewAuthService(repository.NewCredentialRepository(store), cfg).EnsureDefaultCredential(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed default login")
	}
	if seeded {
		log.Warn().Str("username", service.DefaultUsername).Msg("default login created, change it from the settings page")
	}

	// Background jobs run only with Redis; the API works without them.
	var (
		rdb   *redis.Client
		queue service.ReceiptQueue
		pool  *worker.Pool
	)
	if cfg.JobsEnabled() {
		rdb, err = infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()

		dispatcher := worker.NewDispatcher(rdb)
		queue = dispatcher
		pool = startWorkers(ctx, cfg, store, rdb, dispatcher)
	} else {
		log.Info().Msg("REDIS_URL not set, background jobs disabled")
	}

	r := router.New(ctx, router.Deps{Config: cfg, Store: store, Redis: rdb, Queue: queue})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("driver", store.Driver()).Msgf("Jander Vidros API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	if pool != nil {
		pool.Wait()
	}
	log.Info().Msg("server exited")
}

// startWorkers wires the job handlers and the low-stock schedule.
func startWorkers(ctx context.Context, cfg *config.Config, store *repository.Store, rdb *redis.Client, dispatcher *worker.Dispatcher) *worker.Pool {
	mailer := infra.NewMailer(cfg)

	handlers := &worker.Handlers{
		Receipt: worker.NewReceiptWorker(
			repository.NewTransactionRepository(store),
			infra.NewReceipt(cfg.BusinessName),
			cfg.PDFStoragePath,
			cfg.ReceiptEmail,
			dispatcher,
		),
	}
	if mailer.Configured() {
		handlers.Email = worker.NewEmailWorker(mailer)
	} else {
		log.Info().Msg("SMTP_HOST not set, email jobs will be dropped")
	}
	pool := worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	if cfg.LowStockCron != "" {
		_, err := worker.StartLowStockDigest(ctx, worker.LowStockDigestConfig{
			Schedule:    cfg.LowStockCron,
			Products:    repository.NewProductRepository(store),
			NotifyEmail: cfg.ReceiptEmail,
			Emails:      dispatcher,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("invalid LOW_STOCK_CRON")
		}
	}
	return pool
}
