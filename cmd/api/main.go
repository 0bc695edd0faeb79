package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/config"
	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/attendance-grid-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/holidayfile"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-grid-go/internal/repository/postgresql"
	gridService "github.com/cmlabs-hris/attendance-grid-go/internal/service/attendance"
)

const (
	appName    = "attendance-grid"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logLevel := parseLogLevel(cfg.App.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).With(
		slog.String("app", appName),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	weeklyOff, err := attendance.ParseWeekday(cfg.Grid.WeeklyOffDay)
	if err != nil {
		return fmt.Errorf("WEEKLY_OFF_DAY: %w", err)
	}

	var holidayRepo attendance.HolidayRepository
	switch cfg.Grid.HolidaySource {
	case config.HolidaySourceFile:
		fileRepo, err := holidayfile.Load(cfg.Grid.HolidayFile)
		if err != nil {
			return err
		}
		slog.Info("Holiday calendar loaded", "path", cfg.Grid.HolidayFile, "holidays", fileRepo.Len())
		holidayRepo = fileRepo
	default:
		holidayRepo = postgresql.NewHolidayRepository(db)
	}

	appMetrics := metrics.NewMetrics()
	cache := gridService.NewGridCache(cfg.Grid.CacheTTL, cfg.Grid.CacheMaxEntries)

	gridSvc := gridService.NewGridService(
		postgresql.NewSnapshotReader(db),
		postgresql.NewRosterRepository(db),
		postgresql.NewAttendanceRepository(db),
		holidayRepo,
		postgresql.NewLeaveRequestRepository(db),
		cache,
		appMetrics,
		weeklyOff,
	)

	scheduler := cron.NewScheduler()
	if cfg.Grid.CacheTTL > 0 {
		cron.NewGridJobs(gridSvc, cfg.Grid.CacheSweepInterval).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Logger:         appHTTP.NewAccessLogger(&slog.HandlerOptions{Level: logLevel}, os.Stdout, appName, appVersion, cfg.App.Env),
	}, appHTTP.NewAttendanceGridHandler(gridSvc), appMetrics)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "weekly_off", weeklyOff.String(), "holiday_source", cfg.Grid.HolidaySource)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
