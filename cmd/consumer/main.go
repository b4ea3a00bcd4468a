package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostracon-app/ostracon/internal/container"
	"github.com/ostracon-app/ostracon/internal/messaging"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func main() {
	opts := &container.Options{
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		LogFormat:   envOr("LOG_FORMAT", "console"),
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)
	group := do.MustInvoke[*messaging.ConsumerGroup](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := group.Start(ctx); err != nil {
		logger.Fatal("audit consumers failed to start", zap.Error(err))
	}

	<-ctx.Done()
	logger.Info("signal received, draining")

	if err := group.Shutdown(); err != nil {
		logger.Error("consumer shutdown", zap.Error(err))
	}

	if err := injector.Shutdown(); err != nil {
		logger.Error("container shutdown", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
