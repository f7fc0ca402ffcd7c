// @title                       Storefront API
// @version                     1.0
// @description                 Products, users and orders with bearer-token authentication.
// @host                        localhost:3000
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/storefront-api/internal/api"
	"github.com/sirpyerre/storefront-api/internal/core/service"
	"github.com/sirpyerre/storefront-api/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/storefront-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/storefront-api/internal/infrastructure/http/handlers"
	"github.com/sirpyerre/storefront-api/internal/pkg/config"
	"github.com/sirpyerre/storefront-api/internal/pkg/password"
	"github.com/sirpyerre/storefront-api/internal/pkg/token"
	"github.com/sirpyerre/storefront-api/pkg/logger"
)

func main() {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run wires the dependencies and serves until ctx is cancelled or the server
// fails. Every connection it opens is closed before it returns.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	proxies, err := cfg.TrustedProxyRanges()
	if err != nil {
		return err
	}

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	checks := map[string]handlers.Check{"mongodb": mongo.Ping(db)}
	deps := api.Deps{
		Log:                   log,
		TrustedProxies:        proxies,
		LoginLimit:            cfg.Auth.LoginRateLimit,
		LoginWindow:           cfg.Auth.LoginRateWindow,
		EnforceOrderOwnership: cfg.Orders.EnforceOwnership,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks["redis"] = redis.Ping(rdb)
		deps.LoginLimiter = redis.NewFixedWindowLimiter(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	}
	deps.HealthChecks = checks

	if cfg.Auth.TokenTTL == 0 {
		log.Warn().Msg("TOKEN_TTL is 0: issued tokens never expire")
	}
	if len(proxies) == 0 {
		log.Info().Msg("no trusted proxies: client IP is the TCP peer address")
	}

	svcLog := logger.Component("service")
	deps.Auth = service.NewAuthService(
		mongo.NewUserRepository(db),
		password.NewHasher(cfg.Auth.BcryptCost),
		token.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	)
	deps.Products = service.NewProductService(mongo.NewProductRepository(db), svcLog)
	deps.Orders = service.NewOrderService(mongo.NewOrderRepository(db), svcLog)

	e := api.NewRouter(deps)

	errorCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		errorCh <- e.Start(cfg.Addr())
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
		log.Info().Msg("server stopped")
		return nil
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	}
}
