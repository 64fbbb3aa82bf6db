// Package savedfilter persists saved filter presets.
package savedfilter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// listLimit caps one visibility listing; the platform UI pages far below it.
const listLimit = 500

// store is the consumer interface for saved filters (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Repo implements usecase/savedfilter.Repository.
type Repo struct {
	store store
}

// New creates a saved filter repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the saved filter index, tolerating an existing one.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := db.NewIndex(indexName()).OnJSON().
		Prefix(filterPrefix()).
		TagAs("$.owner", "owner").
		TagAs("$.scope", "scope").
		TagAs("$.isPublic", "isPublic").
		TagAs("$.sharedUsers[*]", "sharedUsers").
		TagAs("$.sharedTeams[*]", "sharedTeams").
		NumericSortableAs("$.updatedAt", "updatedAt").
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// Save writes the full filter document. Used for both create and update.
func (r *Repo) Save(ctx context.Context, f domsaved.SavedFilter) error {
	data, err := json.Marshal(filterToDoc(f))
	if err != nil {
		return fmt.Errorf("marshal saved filter %s: %w", f.ID(), err)
	}
	if err := r.store.JSONSet(ctx, filterKey(f.ID()), "$", data); err != nil {
		return fmt.Errorf("json.set saved filter %s: %w", f.ID(), err)
	}
	return nil
}

// Get returns one saved filter by id.
func (r *Repo) Get(ctx context.Context, id string) (domsaved.SavedFilter, error) {
	raw, err := r.store.JSONGet(ctx, filterKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsaved.SavedFilter{}, domain.ErrFilterNotFound
		}
		return domsaved.SavedFilter{}, fmt.Errorf("json.get saved filter %s: %w", id, err)
	}
	return parseGetResult(raw)
}

// Delete removes a saved filter.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := filterKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrFilterNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del saved filter %s: %w", id, err)
	}
	return nil
}

// ListVisible returns filters the actor may see, most recently updated
// first. The store query is a broad pre-filter; callers re-check precise
// visibility on the hydrated aggregates.
func (r *Repo) ListVisible(ctx context.Context, actor domain.Actor) ([]domsaved.SavedFilter, error) {
	expr, err := visibilityExpression(actor)
	if err != nil {
		return nil, err
	}

	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: indexName(),
		Filters:   expr,
		SortBy:    "updatedAt",
		SortDesc:  true,
		Limit:     listLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search saved filters: %w", err)
	}
	if result == nil || len(result.Entries) == 0 {
		return nil, nil
	}

	filters := make([]domsaved.SavedFilter, 0, len(result.Entries))
	for _, entry := range result.Entries {
		f, err := parseSearchResult([]byte(entry.Fields["$"]))
		if err != nil {
			return nil, fmt.Errorf("parse saved filter %s: %w", entry.Key, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// visibilityExpression builds the should-group matching any grant that can
// make a filter visible: ownership, public, organization scope, or a direct
// user or team share.
func visibilityExpression(actor domain.Actor) (filter.Expression, error) {
	grants := []struct {
		key    string
		values []string
	}{
		{"owner", []string{actor.ID()}},
		{"isPublic", []string{"true"}},
		{"scope", []string{string(domsaved.ScopeOrganization)}},
		{"sharedUsers", []string{actor.ID()}},
		{"sharedTeams", actor.Teams()},
	}

	should := make([]filter.Condition, 0, len(grants))
	for _, g := range grants {
		values := make([]string, 0, len(g.values))
		for _, v := range g.values {
			if v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		cond, err := filter.NewIn(g.key, values...)
		if err != nil {
			return filter.Expression{}, err
		}
		should = append(should, cond)
	}

	return filter.NewExpression(nil, should)
}

// Store key patterns: searchd:filter:{id}, searchd:filter:idx

func filterKey(id string) string {
	return fmt.Sprintf("%sfilter:%s", domain.KeyPrefix, id)
}

func indexName() string {
	return domain.KeyPrefix + "filter:idx"
}

func filterPrefix() string {
	return domain.KeyPrefix + "filter:"
}
