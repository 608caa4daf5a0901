package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"

	"github.com/planfact/planfact-bot/internal/config"
	"github.com/planfact/planfact-bot/internal/database"
	"github.com/planfact/planfact-bot/internal/domain/service"
	"github.com/planfact/planfact-bot/internal/handlers"
	"github.com/planfact/planfact-bot/internal/messenger"
	"github.com/planfact/planfact-bot/migrator/sqlite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("bot terminated", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not found, using environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	logger.Info("running migrations")
	if err := sqlite.Migrate(db.DB()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slackClient := slack.New(cfg.SlackBotToken)
	msgr := messenger.New(slackClient)

	opts, err := serviceOptions(cfg, loc, logger)
	if err != nil {
		return err
	}
	svc := service.NewInstance(database.NewInstance(db), msgr, opts)

	handler := handlers.New(svc.Profit, msgr, handlers.Config{
		SigningSecret: cfg.SlackSigningSecret,
		AdminUserID:   cfg.AdminUserID,
		Location:      loc,
		Logger:        logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/slack/events", handler.HandleEvents)
	mux.HandleFunc("/slack/commands", handler.HandleSlashCommand)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.Scheduler.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		svc.Scheduler.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// serviceOptions translates the validated configuration into the service
// wiring, with the HH:MM strings parsed into clock components.
func serviceOptions(cfg *config.Config, loc *time.Location, logger *slog.Logger) (service.Options, error) {
	opts := service.Options{
		AdminUserID: cfg.AdminUserID,
		Location:    loc,
		Logger:      logger,
		Retry: service.RetryPolicy{
			MaxRetries:   cfg.SendMaxRetries,
			BaseDelay:    cfg.SendBaseDelay,
			MaxDelay:     cfg.SendMaxDelay,
			TotalTimeout: cfg.SendTotalTimeout,
		},
	}

	for _, clock := range []struct {
		value        string
		hour, minute *int
	}{
		{cfg.DailyPromptTime, &opts.DailyPromptHour, &opts.DailyPromptMinute},
		{cfg.DailyDigestTime, &opts.DailyDigestHour, &opts.DailyDigestMinute},
		{cfg.FactRequestTime, &opts.FactRequestHour, &opts.FactRequestMinute},
		{cfg.MonthlyReportTime, &opts.MonthlyReportHour, &opts.MonthlyReportMinute},
	} {
		hour, minute, err := config.ParseClock(clock.value)
		if err != nil {
			return service.Options{}, err
		}
		*clock.hour, *clock.minute = hour, minute
	}

	return opts, nil
}
