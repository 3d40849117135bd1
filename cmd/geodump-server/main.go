package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/RahmadZikry/geodump/internal/core/config"
	"github.com/RahmadZikry/geodump/internal/events"
	"github.com/RahmadZikry/geodump/internal/ingest"
	"github.com/RahmadZikry/geodump/internal/logger"
	"github.com/RahmadZikry/geodump/internal/metrics"
	"github.com/RahmadZikry/geodump/internal/observability"
	"github.com/RahmadZikry/geodump/internal/query"
	"github.com/RahmadZikry/geodump/internal/server"
	"github.com/RahmadZikry/geodump/internal/session"
	"github.com/RahmadZikry/geodump/internal/session/redisstore"
	"github.com/RahmadZikry/geodump/internal/store"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// missing .env is fine; env vars win either way
	_ = godotenv.Load()

	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "geodump-server",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	p := metrics.Init(metrics.BuildInfo{
		Version:   Version,
		Revision:  os.Getenv("BUILD_REVISION"),
		BuildDate: os.Getenv("BUILD_DATE"),
	})
	observability.Init(p.Registerer())

	appLog.Info("starting geodump-server", "addr", cfg.Addr, "version", Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	rds, err := redisstore.New(connectCtx, cfg.RedisAddr)
	cancel()
	if err != nil {
		appLog.Error("redis connect failed", "addr", cfg.RedisAddr, "err", err)
		return 1
	}
	defer func() { _ = rds.Close() }()
	sessions := session.NewStore(rds, cfg.SessionTTL)

	st := store.New()
	records := ingest.Load(ctx, cfg.DataSource, cfg.FallbackSize, cfg.FallbackSeed, appLog)
	n := st.Seed(records)
	appLog.Info("store seeded", "records", n)

	var pub *events.Publisher
	if cfg.Events.Enabled {
		pub, err = events.NewPublisher(cfg.Events.BrokerList(), cfg.Events.Topic, cfg.Events.Queue)
		if err != nil {
			appLog.Error("kafka producer setup failed", "err", err)
			return 1
		}
		defer func() { _ = pub.Close() }()
	}

	srv, err := server.New(cfg, appLog, st, query.New(), sessions, pub, p.Handler())
	if err != nil {
		appLog.Error("server setup failed", "err", err)
		return 1
	}

	if err := server.Run(ctx, cfg, appLog, srv.Routes()); err != nil {
		appLog.Error("server error", "err", err)
		return 1
	}
	appLog.Info("shutdown complete")
	return 0
}
