package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/function-o-meter/internal/api"
	"github.com/ZanzyTHEbar/function-o-meter/internal/cache"
)

const shutdownTimeout = 30 * time.Second

func addServeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("port", 8080, "HTTP listen port")
	f.String("gin-mode", "release", "debug, release or test")
	f.Bool("enable-swagger", true, "Serve the OpenAPI UI at /swagger")
}

func newServeCommand(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *cfgPath)
		},
	}
	addServeFlags(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, cfgPath string) error {
	cfg, err := loadConfig(cmd, cfgPath)
	if err != nil {
		return err
	}

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	slog.SetDefault(a.logger.Logger)
	gin.SetMode(cfg.GinMode)

	router := api.NewRouter(api.Options{
		Assessment:    a.assessment,
		Distribution:  a.distribution,
		Cache:         cache.NewCache(cfg.CacheSize, cfg.CacheTTL),
		Metrics:       a.metrics,
		Logger:        a.logger,
		Version:       version,
		CORSOrigins:   cfg.CORSOrigins,
		EnableSwagger: cfg.EnableSwagger,
		EnableHSTS:    cfg.EnableHSTS,
		HealthChecks:  a.healthChecks(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", srv.Addr, "version", version, "scenarios", a.assessment.Corpus().Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			slog.Error("Server failed to start", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return err
	}

	slog.Info("Server exited")
	return nil
}
