package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vendops/api/internal/broker"
	"github.com/vendops/api/internal/cache"
	"github.com/vendops/api/internal/config"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/logger"
	"github.com/vendops/api/internal/mail"
	"github.com/vendops/api/internal/router"
	"github.com/vendops/api/internal/telemetry"
	"github.com/vendops/api/internal/ws"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Hour

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	lg := logger.Get()
	lg.Info("starting vendops api", zap.String("env", cfg.Server.Env))

	if cfg.Observ.JaegerEndpoint != "" {
		tp, err := telemetry.InitTracer(cfg.Observ.JaegerEndpoint)
		if err != nil {
			lg.Fatal("init tracer", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				lg.Error("shutdown tracer", zap.Error(err))
			}
		}()
	}

	if err := database.Migrate(cfg.Database.URL); err != nil {
		lg.Fatal("run migrations", zap.Error(err))
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		lg.Fatal("parse database url", zap.Error(err))
	}
	poolCfg.MaxConns = cfg.Database.MaxConns

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		lg.Fatal("connect to database", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		lg.Fatal("ping database", zap.Error(err))
	}
	lg.Info("database connected")

	queries := database.New(pool)

	in := router.Integrations{
		Cache:     cache.Nop{},
		Publisher: broker.NopPublisher{},
		Mailer:    mail.LogMailer{},
	}

	if cfg.Redis.Addr != "" {
		rc, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			lg.Warn("redis unavailable, stats cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			in.Cache = rc
			lg.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
		defer producer.Close()
		in.Publisher = broker.NewEventPublisher(producer)
		lg.Info("kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	if cfg.Mail.SMTPHost != "" {
		in.Mailer = mail.NewSMTPMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPassword, cfg.Mail.From)
	}

	hub := ws.NewHub()
	go hub.Run()

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	go sweepSessions(bgCtx, queries)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router.New(cfg, queries, pool, hub, in),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}
	bgCancel()

	lg.Info("server exited")
}

// sweepSessions deletes expired sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, queries *database.Queries) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := queries.DeleteExpiredSessions(ctx)
			if err != nil {
				zap.L().Error("delete expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				zap.L().Info("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
