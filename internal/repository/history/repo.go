// Package history persists the per-user search history trail.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain"
	domhist "github.com/agilesafe/searchd/internal/domain/history"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// defaultRecentLimit bounds a recent-history listing when no limit is given.
const defaultRecentLimit = 50

// store is the consumer interface for history records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Repo is the history recorder behind usecase/search and the recent-queries
// source behind usecase/suggest.
type Repo struct {
	store store
}

// New creates a history repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the history index, tolerating an existing one.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := db.NewIndex(indexName()).
		Prefix(recordPrefix()).
		Tag("user").
		NumericSortable("createdAt").
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// Append stores one completed search as a flat hash.
func (r *Repo) Append(ctx context.Context, rec domhist.Record) error {
	fields, err := recordToHash(rec)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, recordKey(rec.ID()), fields); err != nil {
		return fmt.Errorf("hset history %s: %w", rec.ID(), err)
	}
	return nil
}

// ListRecent returns the user's most recent records, newest first.
func (r *Repo) ListRecent(ctx context.Context, user string, limit int) ([]domhist.Record, error) {
	if user == "" {
		return nil, domain.ErrActorRequired
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	cond, err := filter.NewIn("user", user)
	if err != nil {
		return nil, err
	}
	expr, err := filter.NewExpression([]filter.Condition{cond}, nil)
	if err != nil {
		return nil, err
	}

	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: indexName(),
		Filters:   expr,
		SortBy:    "createdAt",
		SortDesc:  true,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search history for %s: %w", user, err)
	}
	if result == nil || len(result.Entries) == 0 {
		return nil, nil
	}

	records := make([]domhist.Record, 0, len(result.Entries))
	for _, entry := range result.Entries {
		rec, err := recordFromHash(entry.Fields)
		if err != nil {
			return nil, fmt.Errorf("parse history %s: %w", entry.Key, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Store key patterns: searchd:history:{id}, searchd:history:idx

func recordKey(id string) string {
	return fmt.Sprintf("%shistory:%s", domain.KeyPrefix, id)
}

func indexName() string {
	return domain.KeyPrefix + "history:idx"
}

func recordPrefix() string {
	return domain.KeyPrefix + "history:"
}
