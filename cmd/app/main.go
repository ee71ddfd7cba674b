package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"lacquer/internal/auth"
	"lacquer/internal/authapi"
	"lacquer/internal/booking"
	"lacquer/internal/catalog"
	"lacquer/internal/config"
	"lacquer/internal/dispatch"
	"lacquer/internal/domain"
	"lacquer/internal/events"
	"lacquer/internal/export"
	"lacquer/internal/metrics"
	"lacquer/internal/nav"
	"lacquer/internal/notify"
	"lacquer/internal/remind"
	"lacquer/internal/route"
	"lacquer/internal/session"
	"lacquer/internal/storage"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("LACQUER_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := storage.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	}

	var tokenRepo session.TokenRepository = db
	if rdb != nil {
		tokenRepo = session.NewFailoverRepository(session.NewRedisRepository(rdb), db, logger)
	}
	sessions := session.NewStore(tokenRepo, logger)

	client := authapi.NewClient(cfg.Auth.BaseURL, cfg.AuthTimeout())
	if rdb != nil && cfg.CacheTTL() > 0 {
		client.UseRedisCache(rdb, cfg.CacheTTL())
	}
	perMinute, burst := cfg.LoginRate()
	authSvc := auth.NewService(client, sessions, perMinute, burst, logger)

	stores := catalog.New()
	gate := nav.NewGate(sessions, logger)
	controller := nav.NewController(gate, route.NewResolver(), stores, logger)
	bookingSession := booking.NewSession(stores, controller, logger)

	bus := events.NewEventBus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// An empty token leaves the notifier in its disabled mode, so the
	// reminder scheduler can run without a configured bot.
	botToken := ""
	if cfg.Telegram.Enabled {
		botToken = cfg.Telegram.BotToken
	}
	notifier, err := notify.NewTelegramNotifier(botToken, cfg.Telegram.ChatID, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create notifier error")
	}
	bus.Subscribe(events.TypeBookingConfirmed, func(e events.Event) error {
		if b, ok := e.Payload.(domain.Booking); ok {
			notifier.BookingConfirmed(b)
		}
		return nil
	})
	bus.Subscribe(events.TypeBookingCancelled, func(e events.Event) error {
		if b, ok := e.Payload.(domain.Booking); ok {
			notifier.BookingCancelled(b)
		}
		return nil
	})

	reminders, err := remind.NewScheduler(remind.Config{
		Enabled:     cfg.Reminders.Enabled,
		Timezone:    cfg.Reminders.Timezone,
		DailyHour:   cfg.Reminders.DailyHour,
		DailyMinute: cfg.Reminders.DailyMinute,
	}, db, notifier, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create reminder scheduler error")
	}
	go reminders.Start(ctx)

	backups := storage.NewBackupService(db, storage.BackupConfig{
		Enabled:       cfg.Backup.Enabled,
		StoragePath:   cfg.Backup.StoragePath,
		IntervalHours: cfg.Backup.IntervalHours,
		RetentionDays: cfg.Backup.RetentionDays,
	}, logger)
	go backups.Start(ctx)

	if cfg.Sheets.Enabled {
		sheetsSvc, err := export.NewSheetsService(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, logger)
		if err != nil {
			logger.Error().Err(err).Msg("sheets export disabled")
		} else {
			if history, err := db.ListBookings(ctx); err != nil {
				logger.Error().Err(err).Msg("listing bookings for sheet sync failed")
			} else if err := sheetsSvc.SyncBookings(ctx, history); err != nil {
				logger.Error().Err(err).Msg("initial sheet sync failed")
			}
			bus.Subscribe(events.TypeBookingConfirmed, func(e events.Event) error {
				if b, ok := e.Payload.(domain.Booking); ok {
					return sheetsSvc.AppendBooking(ctx, b)
				}
				return nil
			})
			bus.Subscribe(events.TypeBookingCancelled, func(e events.Event) error {
				if id, ok := e.Payload.(string); ok {
					return sheetsSvc.RemoveBooking(ctx, id)
				}
				return nil
			})
		}
	}

	dispatcher := dispatch.NewDispatcher(controller, bookingSession, authSvc, stores, db, bus, logger)

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	// Restore the last session: lands on home when a token survived the
	// restart, on login otherwise.
	dispatcher.Dispatch(dispatch.OpenPath{Path: "/"})

	logger.Info().Msg("lacquer client started")
	dispatcher.Run(ctx)
}

func startHealthServer(ctx context.Context, port int, db *storage.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
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
