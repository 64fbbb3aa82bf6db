// Package searchd embeds the cross-entity search engine in a Go process:
// the same ranking, suggestions, history and saved filter services the HTTP
// API exposes, wired directly over a Redis or Valkey store.
package searchd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agilesafe/searchd/internal/db"
	dbRedis "github.com/agilesafe/searchd/internal/db/redis"
	dbValkey "github.com/agilesafe/searchd/internal/db/valkey"
	entityrepo "github.com/agilesafe/searchd/internal/repository/entity"
	historyrepo "github.com/agilesafe/searchd/internal/repository/history"
	savedfilterrepo "github.com/agilesafe/searchd/internal/repository/savedfilter"
	savedfilteruc "github.com/agilesafe/searchd/internal/usecase/savedfilter"
	searchuc "github.com/agilesafe/searchd/internal/usecase/search"
	suggestuc "github.com/agilesafe/searchd/internal/usecase/suggest"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the searchd SDK entry point.
type Client struct {
	store      db.Store
	entities   *entityrepo.Repo
	searchSvc  *searchuc.Service
	suggestSvc *suggestuc.Service
	filtersSvc *savedfilteruc.Service
}

// New creates a searchd Client, connects to the database and ensures the
// search indexes exist.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readyTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("searchd: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readyTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchd: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("searchd: create valkey store: %w", err)
		}
		return s, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("searchd: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("searchd: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	entities := entityrepo.New(store)
	historyRepo := historyrepo.New(store)
	filtersRepo := savedfilterrepo.New(store)

	if err := entities.EnsureIndexes(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchd: ensure entity indexes: %w", err)
	}
	if err := historyRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchd: ensure history index: %w", err)
	}
	if err := filtersRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchd: ensure saved filter index: %w", err)
	}

	searchSvc := searchuc.New(entities, historyRepo)
	if cfg.minScore > 0 {
		searchSvc = searchSvc.WithMinScore(cfg.minScore)
	}
	suggestSvc := suggestuc.New(historyRepo, entities).
		WithScanLimits(cfg.historyScan, cfg.projectScan)

	return &Client{
		store:      store,
		entities:   entities,
		searchSvc:  searchSvc,
		suggestSvc: suggestSvc,
		filtersSvc: savedfilteruc.New(filtersRepo),
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Filters returns the saved filter service.
func (c *Client) Filters() *FilterService {
	return &FilterService{svc: c.filtersSvc}
}

// Entities returns the entity write service used to seed and sync the
// searchable collections.
func (c *Client) Entities() *EntityService {
	return &EntityService{repo: c.entities}
}
