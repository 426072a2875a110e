package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"
	"gorm.io/gorm"

	"github.com/yanqian/desi-diet/internal/domain/auth"
	"github.com/yanqian/desi-diet/internal/domain/catalog"
	"github.com/yanqian/desi-diet/internal/domain/nutrition"
	"github.com/yanqian/desi-diet/internal/domain/state"
	"github.com/yanqian/desi-diet/internal/domain/subscription"
	"github.com/yanqian/desi-diet/internal/infra/catalogsource"
	"github.com/yanqian/desi-diet/internal/infra/config"
	"github.com/yanqian/desi-diet/internal/infra/scheduler"
	"github.com/yanqian/desi-diet/internal/infra/sqlitedb"
	"github.com/yanqian/desi-diet/internal/infra/statestore"
	"github.com/yanqian/desi-diet/internal/infra/subscriptionrepo"
	"github.com/yanqian/desi-diet/internal/infra/userrepo"
	"github.com/yanqian/desi-diet/pkg/util"
)

const (
	connectTimeout = 5 * time.Second
	jobTimeout     = time.Minute
)

// backends holds the connections opened for the configured storage.
type backends struct {
	pool   *pgxpool.Pool
	valkey valkey.Client
	sqlite *gorm.DB
}

func provideBackends(cfg *config.Config, logger *slog.Logger) (*backends, func(), error) {
	b := &backends{}
	cleanup := func() {
		if b.pool != nil {
			b.pool.Close()
		}
		if b.valkey != nil {
			b.valkey.Close()
		}
		if b.sqlite != nil {
			if sqlDB, err := b.sqlite.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	}

	if dsn := strings.TrimSpace(cfg.Postgres.DSN); dsn != "" {
		pool, err := openPostgres(cfg.Postgres)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		b.pool = pool
		logger.Info("postgres enabled", "maxConns", cfg.Postgres.MaxConns)
	}

	switch cfg.Storage.Driver {
	case config.DriverValkey:
		client, err := openValkey(cfg.Storage.Valkey.Addr)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		b.valkey = client
		logger.Info("valkey state store enabled", "addr", cfg.Storage.Valkey.Addr)
	case config.DriverSQLite:
		db, err := sqlitedb.Open(cfg.Storage.SQLite.Path, logger,
			&statestore.StateBlob{}, &userrepo.UserRow{}, &subscriptionrepo.SubscriptionRow{})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		b.sqlite = db
		logger.Info("sqlite storage enabled", "path", cfg.Storage.SQLite.Path)
	}
	return b, cleanup, nil
}

func openPostgres(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

func openValkey(addr string) (valkey.Client, error) {
	opt, err := buildValkeyOptions(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid valkey configuration: %w", err)
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}
	return client, nil
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideStateStore(cfg *config.Config, b *backends, logger *slog.Logger) (state.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		store := statestore.NewPostgresStore(b.pool)
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverValkey:
		return statestore.NewValkeyStore(b.valkey, cfg.Storage.Valkey.Prefix), nil
	case config.DriverSQLite:
		return statestore.NewSQLiteStore(b.sqlite), nil
	default:
		logger.Warn("using in-memory state store, meals and profiles are lost on restart")
		return statestore.NewMemoryStore(), nil
	}
}

func provideUserRepository(b *backends, logger *slog.Logger) (auth.Repository, error) {
	switch {
	case b.pool != nil:
		repo := userrepo.NewPostgresRepository(b.pool)
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case b.sqlite != nil:
		return userrepo.NewSQLiteRepository(b.sqlite), nil
	default:
		logger.Info("postgres dsn not set, using memory user repository")
		return userrepo.NewMemoryRepository(), nil
	}
}

func provideSubscriptionRepository(b *backends) (subscription.Repository, error) {
	switch {
	case b.pool != nil:
		repo := subscriptionrepo.NewPostgresRepository(b.pool)
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case b.sqlite != nil:
		return subscriptionrepo.NewSQLiteRepository(b.sqlite), nil
	default:
		return subscriptionrepo.NewMemoryRepository(), nil
	}
}

func provideCatalogSource(cfg *config.Config, logger *slog.Logger) (catalog.Source, error) {
	r2 := cfg.Catalog.R2
	switch {
	case r2.Bucket != "":
		src, err := catalogsource.NewR2(r2.Endpoint, r2.AccessKey, r2.SecretKey, r2.Bucket, r2.Region, r2.Object, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case cfg.Catalog.Path != "":
		return catalogsource.NewFile(cfg.Catalog.Path), nil
	default:
		return catalogsource.NewBuiltin(), nil
	}
}

func provideCatalog(src catalog.Source, logger *slog.Logger) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return catalog.Load(ctx, src, logger)
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideNutritionConfig() nutrition.Config {
	return nutrition.Config{DefaultTarget: nutrition.DefaultTarget, MaxAttempts: 3}
}

func provideSubscriptionConfig(cfg *config.Config) subscription.Config {
	return subscription.Config{Period: time.Duration(cfg.Subscription.PeriodDays) * 24 * time.Hour}
}

func provideClock() util.Clock {
	return util.NowUTC
}

func provideScheduler(cfg *config.Config, subscriptions subscription.Service, logger *slog.Logger) (*scheduler.Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Subscription.SweepTimezone)
	if err != nil {
		return nil, err
	}
	jobs := scheduler.New(loc, jobTimeout, logger)
	sweep := func(ctx context.Context) error {
		_, err := subscriptions.SweepExpired(ctx)
		return err
	}
	if cfg.Subscription.SweepInterval > 0 {
		_, err = jobs.ScheduleInterval("subscription-sweep", cfg.Subscription.SweepInterval, sweep)
	} else {
		_, err = jobs.ScheduleDaily("subscription-sweep", cfg.Subscription.SweepAt, sweep)
	}
	if err != nil {
		return nil, fmt.Errorf("schedule subscription sweep: %w", err)
	}
	return jobs, nil
}
