package bootstrap

import (
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kebelehub/rfm-ui-api/config"
	redisadapter "github.com/kebelehub/rfm-ui-api/internal/adapters/redis"
	"github.com/kebelehub/rfm-ui-api/internal/adapters/upstream"
	"github.com/kebelehub/rfm-ui-api/internal/listing"
	"github.com/kebelehub/rfm-ui-api/internal/service"
)

// ServiceDeps carries the shared infrastructure services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Reset    *service.ResetService
	Flashes  *redisadapter.FlashStore
	Prefs    *redisadapter.PrefsStore
	Upstream *upstream.Client
}

// NewServices wires stores, the upstream client, and the application
// services together.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := upstream.NewClient(upstream.Config{
		BaseURL: deps.Config.Upstream.BaseURL,
		Timeout: deps.Config.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build upstream client: %w", err)
	}

	sessions := redisadapter.NewSessionStore(deps.RedisClient, logger)
	flows := redisadapter.NewFlowStore(deps.RedisClient)
	flashes := redisadapter.NewFlashStore(deps.RedisClient)
	prefs := redisadapter.NewPrefsStore(deps.RedisClient)

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Upstream: client,
		Sessions: sessions,
		Flashes:  flashes,
		Logger:   logger,
	})
	resetSvc := service.NewResetService(service.ResetServiceOptions{
		Upstream: client,
		Flows:    flows,
	})

	return &ServiceContainer{
		Auth:     authSvc,
		Reset:    resetSvc,
		Flashes:  flashes,
		Prefs:    prefs,
		Upstream: client,
	}, nil
}

// Fetchers exposes the upstream list fetcher factory for router wiring.
func (c *ServiceContainer) Fetchers(resource string) listing.Fetcher {
	return c.Upstream.ListFetcher(resource)
}
