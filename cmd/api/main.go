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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/interserv/agendamento-api/internal/audit"
	"github.com/interserv/agendamento-api/internal/cache"
	"github.com/interserv/agendamento-api/internal/config"
	dbpkg "github.com/interserv/agendamento-api/internal/db"
	"github.com/interserv/agendamento-api/internal/logger"
	"github.com/interserv/agendamento-api/internal/routes"
	"github.com/interserv/agendamento-api/internal/telemetry"
	"github.com/interserv/agendamento-api/internal/timezone"
)

const serviceName = "agendamento-api"

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if !timezone.IsValid(cfg.Timezone) {
		zlog.Warn("invalid timezone, using default",
			zap.String("timezone", cfg.Timezone),
			zap.String("default", timezone.DefaultTimezone),
		)
	}

	shutdownTelemetry := telemetry.Setup(serviceName, cfg.OTLPEndpoint, cfg.OTLPInsecure, zlog)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	var catalogCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			catalogCache = cache.NewRedis(client, "interserv:")
		}
		cancel()
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), zlog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    zlog,
		Cache:  catalogCache,
		Audit:  auditDispatcher,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      otelhttp.NewHandler(r, serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
	// drena a fila de auditoria depois que nenhuma requisição nova entra
	if err := auditDispatcher.Close(ctx); err != nil {
		zlog.Warn("audit drain", zap.Error(err))
	}
}
