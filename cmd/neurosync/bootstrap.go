package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/example/neurosync/internal/application"
	"github.com/example/neurosync/internal/catalog"
	"github.com/example/neurosync/internal/config"
	"github.com/example/neurosync/internal/logging"
	"github.com/example/neurosync/internal/persistence"
	"github.com/example/neurosync/internal/persistence/memory"
	"github.com/example/neurosync/internal/persistence/redis"
	"github.com/example/neurosync/internal/persistence/sqlite"
	"github.com/example/neurosync/internal/queue"
)

type app struct {
	cfg       config.Config
	logger    *slog.Logger
	store     persistence.ClosableStore
	publisher *queue.Publisher
	client    *application.Client
}

func bootstrap(ctx context.Context, opts *rootOptions) (*app, error) {
	if err := config.LoadEnvFiles(opts.envFiles...); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(opts.errOut, cfg.LogFormat, cfg.LogLevel)

	rooms, err := loadRooms(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load room catalog", "error", err)
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", "storage", cfg.Storage, "error", err)
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, store: store}
	var notifier application.ReservationNotifier
	if cfg.AMQPURL != "" {
		a.publisher = queue.NewPublisher(cfg.AMQPURL, cfg.EventsQueue, logger)
		notifier = a.publisher
	}

	scheme := cfg.ColorScheme
	client, err := application.NewClient(application.ClientDeps{
		Store:       store,
		ColorScheme: func() string { return scheme },
		IDGenerator: uuid.NewString,
		Notifier:    notifier,
		Rooms:       rooms,
		Logger:      logger,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.client = client

	// A failed load leaves defaults in place; the client is still usable.
	if err := client.Init(ctx); err != nil {
		logger.Warn("starting with partially loaded state", "error", err)
	}
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("failed to close storage", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg config.Config) (persistence.ClosableStore, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageRedis:
		store, err := redis.Open(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageSQLite, "":
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}

func loadRooms(path string) ([]application.Room, error) {
	var (
		entries []catalog.Room
		err     error
	)
	if path == "" {
		entries, err = catalog.Default()
	} else {
		entries, err = catalog.Load(path)
	}
	if err != nil {
		return nil, err
	}

	rooms := make([]application.Room, 0, len(entries))
	for _, entry := range entries {
		rooms = append(rooms, application.Room{
			ID:       entry.ID,
			Name:     entry.Name,
			Noise:    entry.Noise,
			Light:    entry.Light,
			Location: entry.Location,
			Reserved: entry.Reserved,
		})
	}
	return rooms, nil
}
