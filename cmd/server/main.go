package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/ostracon-app/ostracon/internal/container"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func buildInjector(options *container.Options) *do.Injector {
	injector := do.New()
	do.ProvideValue(injector, options)

	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.GuardPackage(injector)
	container.RateLimitPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)

	return injector
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := buildInjector(options)
		logger := do.MustInvoke[*zap.Logger](injector)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", options.Port),
			ReadHeaderTimeout: 10 * time.Second,
		}

		hooks.OnStart(func() {
			// Building the API registers every route on the router.
			_ = do.MustInvoke[huma.API](injector)
			server.Handler = do.MustInvoke[*chi.Mux](injector)

			logger.Info("listening", zap.Int("port", options.Port))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("listen failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logger.Error("http shutdown", zap.Error(err))
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("container shutdown", zap.Error(err))
			}

			logger.Info("stopped")
		})
	})

	cli.Run()
}
