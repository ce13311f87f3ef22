package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RassulYunussov/msclient"
	"github.com/RassulYunussov/msclient/authcache"
	"github.com/RassulYunussov/msclient/authentication"
	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/config"
	"github.com/RassulYunussov/msclient/endpoint"
	"github.com/RassulYunussov/msclient/internal/logging"
	"github.com/RassulYunussov/msclient/microservice"
	"github.com/RassulYunussov/msclient/session"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type sessionStore interface {
	common.SessionData
	SetLoggedEnterprise(ctx context.Context, correlationID uuid.UUID, enterpriseID int64) error
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	sessionID := flag.String("session", "", "session correlation id (GuidSessionDataRequest)")
	enterpriseID := flag.Int64("enterprise", 0, "log the session in for this enterprise before calling")
	flag.Parse()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger, *sessionID, *enterpriseID)
	stop()
	if err != nil {
		logger.Error("call failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, sessionID string, enterpriseID int64) error {
	var sessions sessionStore
	var cache common.AuthCache
	if cfg.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		cache = authcache.NewRedisCache(rdb, cfg.AuthCacheTTL)
		logger.Info("using redis stores", zap.String("address", cfg.RedisAddress))
	} else {
		sessions = session.NewMemoryStore()
		cache = authcache.NewMemoryCache(cfg.AuthCacheTTL)
	}

	if sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return fmt.Errorf("invalid session id: %w", err)
		}
		ctx = session.WithRequestID(ctx, id)
		if enterpriseID != 0 {
			if err := sessions.SetLoggedEnterprise(ctx, id, enterpriseID); err != nil {
				return err
			}
		}
	}

	opts := []msclient.Option{msclient.WithLogger(logger)}
	if cfg.RetryMax > 0 {
		opts = append(opts, msclient.WithRetry(cfg.RetryMax, cfg.RetryBackoff))
	}
	if cfg.CircuitBreakerConsecutiveFailures > 0 {
		opts = append(opts, msclient.WithCircuitBreaker(cfg.CircuitBreakerMaxRequests, cfg.CircuitBreakerConsecutiveFailures, cfg.CircuitBreakerInterval, cfg.CircuitBreakerTimeout))
	}
	if cfg.AuthEnabled() {
		authService := authentication.NewService(cfg.AuthBaseURL, cfg.AuthLoginPath, cfg.HTTPTimeout)
		defer authService.Close()
		opts = append(opts, msclient.WithMicroserviceAuth(sessions, cache, authService, cfg.AuthCredentials))
	}

	registry, err := microservice.DefaultRoutes(cfg.MicroserviceURLs)
	if err != nil {
		return err
	}
	client := endpoint.NewClient(msclient.Create(cfg.HTTPTimeout, opts...), registry)
	defer client.Close()

	resp, err := endpoint.NewDrugTraffickingEndpoint(client).DrugTrafficking(ctx)
	if err != nil {
		return err
	}
	logger.Info("DrugTrafficking responded", zap.Int("status", resp.StatusCode))
	fmt.Println(resp.Content)
	if !resp.IsSuccessStatusCode() {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
