// Package application wires configuration, data sources and the lookup
// service together for both the HTTP server and the terminal client.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/orderlookup/internal/config"
	"github.com/JonMunkholm/orderlookup/internal/core"
	_ "github.com/JonMunkholm/orderlookup/internal/core/tables" // Register all datasets
	"github.com/JonMunkholm/orderlookup/internal/dataset"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds the wired components. Close releases the database pool.
type App struct {
	Config  *config.Config
	Loader  *dataset.Loader
	Service *core.Service

	pool *pgxpool.Pool
}

// New builds the resolver chain and service described by cfg. Files in
// the data directory are tried first; the database, when configured, is
// consulted only for datasets no file provides.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	refs, err := Refs(cfg)
	if err != nil {
		return nil, err
	}

	resolvers := dataset.DefaultResolvers(cfg.Data.Dir, cfg.Data.GlobFallback)

	var pool *pgxpool.Pool
	if cfg.Database.Enabled() {
		pool, err = connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		resolvers = append(resolvers, dataset.PostgresTable{DB: pool})
	}

	loader := dataset.NewLoader(resolvers...)
	slog.Debug("resolver chain", "resolvers", strings.Join(loader.Resolvers(), ","))

	return &App{
		Config:  cfg,
		Loader:  loader,
		Service: core.NewService(loader, refs),
		pool:    pool,
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Refs returns the registered dataset references with the configured
// overrides applied. An override for an unregistered dataset is an error.
func Refs(cfg *config.Config) ([]dataset.Ref, error) {
	overrides, err := cfg.DatasetOverrides()
	if err != nil {
		return nil, err
	}

	refs := core.DefaultRefs()
	known := make(map[string]bool, len(refs))
	for i := range refs {
		known[refs[i].Name] = true
		o, ok := overrides[refs[i].Name]
		if !ok {
			continue
		}
		if o.File != "" {
			refs[i].BaseFile = o.File
		}
		if o.Pattern != "" {
			refs[i].Pattern = o.Pattern
		}
		if o.Table != "" {
			refs[i].Table = o.Table
		}
	}

	for key := range overrides {
		if !known[key] {
			return nil, fmt.Errorf("unknown dataset %q in overrides", key)
		}
	}
	return refs, nil
}

// connect opens and verifies the database pool.
func connect(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, fmt.Errorf("connect database: parse url: %w", err)
	}
	poolConfig.MaxConns = int32(db.MaxConns)

	ctx, cancel := context.WithTimeout(ctx, db.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect database: ping: %w", err)
	}

	if u, err := url.Parse(db.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
