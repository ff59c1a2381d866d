// Command server runs the S4 task board API.
//
//	@title						S4 Task Board API
//	@version					1.0
//	@description				Shared task board with a four-stage pipeline and a small team of accounts.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/syncro4/taskboard/internal/api"
	"github.com/syncro4/taskboard/internal/api/metrics"
	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
	"github.com/syncro4/taskboard/internal/core/service"
	"github.com/syncro4/taskboard/internal/infrastructure/db/file"
	"github.com/syncro4/taskboard/internal/infrastructure/db/memory"
	mongostore "github.com/syncro4/taskboard/internal/infrastructure/db/mongo"
	redisstore "github.com/syncro4/taskboard/internal/infrastructure/db/redis"
	"github.com/syncro4/taskboard/internal/infrastructure/persist"
	"github.com/syncro4/taskboard/internal/infrastructure/queue"
	"github.com/syncro4/taskboard/internal/pkg/config"
	"github.com/syncro4/taskboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "taskboard",
	})

	kv, closeKV, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeKV()

	adapter := persist.NewAdapter(kv, cfg.Storage.KeyPrefix, log)
	store := service.NewStore(adapter.Hydrate(ctx, domain.Seed(time.Now())), adapter, log)

	secret := cfg.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	sessions := service.NewSessionService(store, secret, cfg.TokenTTL)

	events := queue.NewBroadcaster(log)
	defer events.Attach(store)()
	defer metrics.Track(store)()

	e := api.NewRouter(api.Dependencies{
		Store:         store,
		Sessions:      sessions,
		Events:        events,
		Storage:       kv,
		StorageDriver: cfg.Storage.Driver,
		FocusLimit:    cfg.FocusLimit,
		Logger:        log,
		BaseContext:   ctx,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStorage connects the configured backend. An unreachable server is not
// fatal: hydration falls back to the seed and writes are retried on every
// mutation. The returned func releases the backend.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.KVStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn().Msg("memory storage selected, board state is lost on exit")
		return memory.NewKVStore(), noop, nil

	case config.DriverRedis:
		rcfg := redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
		client, err := redisstore.Connect(ctx, rcfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unreachable, continuing with a lazy client")
			client = redisstore.Open(rcfg)
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("redis connected")
		}
		return redisstore.NewKVStore(client), func() { _ = client.Close() }, nil

	case config.DriverMongo:
		mcfg := mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}
		client, db, err := mongostore.Connect(ctx, mcfg)
		if err != nil {
			log.Warn().Err(err).Msg("mongo unreachable, continuing with a background client")
			if client, db, err = mongostore.Open(mcfg); err != nil {
				// the URI itself is unusable
				return nil, nil, err
			}
		} else {
			log.Info().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("mongo connected")
		}
		return mongostore.NewKVStore(db, cfg.Mongo.Collection), func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		kv, err := file.Open(cfg.Storage.Dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", cfg.Storage.Dir).Msg("storage directory unusable, falling back to memory")
			return memory.NewKVStore(), noop, nil
		}
		log.Info().Str("dir", cfg.Storage.Dir).Msg("file storage ready")
		return kv, noop, nil
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
