package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"memberportal/config"
	"memberportal/internal/health"
	"memberportal/internal/infrastructure/cms"
	ctxlog "memberportal/internal/log"
	"memberportal/internal/metrics"
	httptransport "memberportal/internal/transport/http"
	"memberportal/internal/transport/http/handler"
	"memberportal/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.NewLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	backend := cms.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	authUsecase := usecase.NewAuthUsecase(backend)
	authHandler := handler.NewAuthHandler(authUsecase, logger)
	homeHandler := handler.NewHomeHandler(authUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(backend, logger, prometheus.DefaultRegisterer)
	probe, err := health.NewProbe(checker, cfg.HealthProbeCron, logger, prometheus.DefaultRegisterer)
	if err != nil {
		stop()
		log.Fatalf("health probe: %v", err)
	}
	go probe.Start(ctx)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, homeHandler, backend),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
