// Package container wires the application together: every client is
// explicitly constructed here and injected where needed, so nothing holds
// ambient module-level state and every component can be swapped for a test
// double.
package container

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/ostracon-app/ostracon/internal/audit"
	"github.com/ostracon-app/ostracon/internal/auth"
	"github.com/ostracon-app/ostracon/internal/events"
	"github.com/ostracon-app/ostracon/internal/guard"
	"github.com/ostracon-app/ostracon/internal/handlers"
	"github.com/ostracon-app/ostracon/internal/health"
	"github.com/ostracon-app/ostracon/internal/messaging"
	"github.com/ostracon-app/ostracon/internal/middleware"
	"github.com/ostracon-app/ostracon/internal/ratelimit"
	"github.com/ostracon-app/ostracon/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options holds process configuration, populated from flags and environment
// by humacli.
type Options struct {
	Port        int    `default:"8888"           help:"Port to listen on"                              short:"p"`
	RedisAddr   string `default:"localhost:6379" help:"Redis server address"                           short:"r"`
	PostgresURL string `default:""               help:"PostgreSQL URL for the audit store (optional)"`
	LogFormat   string `default:"console"        help:"Log format: console or json"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr:         options.RedisAddr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}), nil
	})
}

// PostgresPackage provides the audit database pool. Only invoked when an
// audit store needs it, so a missing PostgresURL never blocks the server.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresURL)
	})
}

// GuardPackage provides the account lock guard and the session resolver.
func GuardPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*guard.Guard, error) {
		client := do.MustInvoke[*redis.Client](i)

		return guard.New(store.NewGuardRedisStore(client)), nil
	})

	do.Provide(injector, func(i *do.Injector) (auth.Resolver, error) {
		client := do.MustInvoke[*redis.Client](i)

		return auth.NewRedisResolver(client), nil
	})
}

// RateLimitPackage provides the shared rate-limit store, the policy limiter
// applied API-wide, and the dedicated unlock attempt limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRateLimitRedisStore(client), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		rlStore := do.MustInvoke[ratelimit.Store](i)

		return ratelimit.NewPolicyLimiter(rlStore, ratelimit.DefaultPolicy()), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.SlidingWindowLimiter, error) {
		rlStore := do.MustInvoke[ratelimit.Store](i)

		return ratelimit.NewSlidingWindowLimiter(rlStore, "auth", 5, time.Minute), nil
	})
}

// PublisherGroupPackage provides the event publisher and the security event
// recorder.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (*events.Recorder, error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)
		logger := do.MustInvoke[*zap.Logger](i)

		newID, err := nanoid.Standard(21)
		if err != nil {
			return nil, err
		}

		publish := messaging.NewPublishFunc[events.SecurityEvent](
			group.Publisher(), events.TopicAccountSecurity)

		return events.NewRecorder(publish, newID, logger), nil
	})
}

// ConsumerGroupPackage provides the audit consumer group for the consumer
// binary. Events land in PostgreSQL when configured, otherwise in the log.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (audit.Store, error) {
		options := do.MustInvoke[*Options](i)

		if options.PostgresURL == "" {
			logger := do.MustInvoke[*zap.Logger](i)

			return audit.NewNoop(logger), nil
		}

		pool := do.MustInvoke[*pgxpool.Pool](i)

		return store.NewPostgresAuditStore(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (message.Subscriber, error) {
		client := do.MustInvoke[*redis.Client](i)

		return redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "audit",
		}, watermill.NewStdLogger(false, false))
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		subscriber := do.MustInvoke[message.Subscriber](i)
		auditStore := do.MustInvoke[audit.Store](i)
		logger := do.MustInvoke[*zap.Logger](i)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			events.TopicAccountSecurity,
			audit.NewEventHandler(auditStore),
			logger,
		))

		return group, nil
	})
}

// HTTPPackage provides the router and the huma API with all middleware and
// routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		resolver := do.MustInvoke[auth.Resolver](i)
		policyLimiter := do.MustInvoke[*ratelimit.PolicyLimiter](i)
		authLimiter := do.MustInvoke[*ratelimit.SlidingWindowLimiter](i)
		accountGuard := do.MustInvoke[*guard.Guard](i)
		recorder := do.MustInvoke[*events.Recorder](i)
		client := do.MustInvoke[*redis.Client](i)

		api := humachi.New(router, huma.DefaultConfig("Ostracon Account Guard", "1.0.0"))

		// Authentication runs before rate limiting so limits key on the
		// user rather than the network peer whenever a session exists.
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.Authenticate(api, resolver, logger))
		api.UseMiddleware(middleware.PolicyRateLimiter(
			api, policyLimiter, ratelimit.NewOperationScopeResolver(), logger))

		pinHandler := handlers.NewPinHandler(accountGuard, recorder, logger)
		handlers.RegisterRoutes(api, pinHandler, middleware.RateLimiter(api, authLimiter))

		health.RegisterRoutes(api, health.NewHandler(health.NewRedisChecker(client)))

		return api, nil
	})
}
