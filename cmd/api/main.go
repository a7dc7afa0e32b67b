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

	"database/sql"

	"github.com/Dan9191/ledger-service/internal/config"
	"github.com/Dan9191/ledger-service/internal/handler"
	"github.com/Dan9191/ledger-service/internal/metrics"
	"github.com/Dan9191/ledger-service/internal/middleware"
	"github.com/Dan9191/ledger-service/internal/monitor"
	"github.com/Dan9191/ledger-service/internal/repository"
	"github.com/Dan9191/ledger-service/internal/seed"
	"github.com/Dan9191/ledger-service/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	// Connectivity is reported by the /db test action, so a database that is
	// down at startup is not fatal.
	if err := db.Ping(); err != nil {
		logger.Warnf("Failed to ping database: %v", err)
	}

	// Initialize layers
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, m, seed.FS(cfg.SeedDir))
	h := handler.NewHandler(svc, logger)

	if cfg.HealthSchedule != "" {
		mon, err := monitor.New(svc, cfg.HealthSchedule, logger)
		if err != nil {
			logger.Fatalf("Failed to start connectivity monitor: %v", err)
		}
		mon.Start()
		defer mon.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger(logger), middleware.Recovery(logger))
	h.Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORSAllowedOrigins)(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
