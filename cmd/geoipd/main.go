package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TomasB/geoip/internal/config"
	"github.com/TomasB/geoip/internal/data"
	"github.com/TomasB/geoip/internal/engine"
	"github.com/TomasB/geoip/internal/geoip"
	grpchandler "github.com/TomasB/geoip/internal/handler/grpc"
	"github.com/TomasB/geoip/internal/handler/health"
	"github.com/TomasB/geoip/internal/handler/lookup"
	"github.com/TomasB/geoip/internal/logging"
	"github.com/TomasB/geoip/internal/metrics"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize structured logging
	logger := logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logLevel := logging.ParseLevel(cfg.LogLevel)

	slog.Info("service starting", "log_level", logLevel.String())

	// Set Gin mode based on log level
	if logLevel == slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the database
	source, err := data.NewSource(newOpener(cfg))
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "types", cfg.DBTypes, "error", err)
		os.Exit(1)
	}
	defer source.Close()

	slog.Info("database loaded", "description", source.Describe())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		go func() {
			if err := source.Watch(ctx, cfg.DBPath); err != nil {
				slog.Error("database watch stopped", "path", cfg.DBPath, "error", err)
			}
		}()
	}

	// Create Gin router
	router := gin.New()
	router.Use(logging.GinLogger(logger))
	router.Use(gin.Recovery())

	// Register health endpoints
	healthHandler := health.NewHandler(source)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Register API endpoints
	lookupHandler := lookup.NewHandler(source)
	api := router.Group("/api/v1")
	{
		api.GET("/lookup/:name", lookupHandler.Lookup)
		api.POST("/lookup", lookupHandler.Batch)
		api.GET("/database", lookupHandler.Database)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("http server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Start gRPC server
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		slog.Error("failed to listen for gRPC", "port", cfg.GRPCPort, "error", err)
		os.Exit(1)
	}
	grpcSrv := grpchandler.NewServer(grpchandler.NewHandler(source), logger)
	go func() {
		slog.Info("grpc server started", "port", cfg.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			slog.Error("grpc server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	<-ctx.Done()

	slog.Info("service shutting down")

	// Graceful shutdown with 30s timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	grpcSrv.GracefulStop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("service stopped")
}

// newOpener builds the function that opens (and reopens) the database.
func newOpener(cfg config.Config) data.Opener {
	eng := engine.NewMaxMind(engine.WithDataDir(cfg.DataDir))
	mode, _ := engine.ParseCacheMode(cfg.Cache)
	opts := []geoip.Option{
		geoip.WithEngine(eng),
		geoip.WithCacheMode(mode),
	}

	if cfg.DBPath != "" {
		return func() (*geoip.Handle, error) {
			return geoip.Open(cfg.DBPath, opts...)
		}
	}
	return func() (*geoip.Handle, error) {
		return geoip.OpenType(cfg.DBTypes, opts...)
	}
}
