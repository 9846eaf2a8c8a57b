package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	taskgrpc "github.com/mmbalbas1132/Task-Management-System/tasks/adapters/grpc"
	"github.com/mmbalbas1132/Task-Management-System/tasks/adapters/rest"
	"github.com/mmbalbas1132/Task-Management-System/tasks/adapters/rest/handlers"
	"github.com/mmbalbas1132/Task-Management-System/tasks/config"
	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), cfg, log); err != nil {
				log.Error("server failed", "error", err)
				return err
			}
			return nil
		},
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	log.Info("starting tasks-service server")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// database adapter
	storage, closeStorage, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	if cfg.DB.AutoMigrate {
		if err := storage.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}
	}

	// service
	tasksService := core.NewService(storage, core.WithOwnershipCheck(cfg.Tasks.EnforceOwnership))

	auth, err := rest.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return err
	}

	// http
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := newEcho(log, tasksService, auth, rest.NewMetrics(reg), cfg.HTTP.Timeout)
	e.Server.ReadHeaderTimeout = cfg.HTTP.Timeout

	// grpc
	listener, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, taskgrpc.NewServer(log, tasksService))
	reflection.Register(s)

	errCh := make(chan error, 2)
	go func() {
		log.Info("tasks-service gRPC server is running", "address", cfg.GRPC.Address)
		if err := s.Serve(listener); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()
	go func() {
		log.Info("tasks-service http server is running", "address", cfg.HTTP.Address)
		if err := e.Start(cfg.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case runErr = <-errCh:
		log.Error("server stopped unexpectedly", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Debug("shutting down tasks-service server")
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	s.GracefulStop()

	return runErr
}

func newEcho(log *slog.Logger, svc core.Tasks, auth *rest.Authenticator, metrics *rest.Metrics, timeout time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(rest.RequestLogger(log))
	e.Use(metrics.Middleware())
	// innermost, so recovered panics are still logged and counted
	e.Use(middleware.Recover())

	e.GET("/metrics", metrics.Handler())
	handlers.Register(e, log, svc, auth.Middleware(), timeout)

	return e
}
