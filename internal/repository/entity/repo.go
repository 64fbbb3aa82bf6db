// Package entity fetches search candidates from the shared entity
// collections and resolves their cross-entity references.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// defaultNameScan bounds a project name listing when no limit is given.
const defaultNameScan = 200

// store is the consumer interface for entity collections (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Repo is the candidate source behind usecase/search and usecase/suggest.
// Entity documents are written by the platform backend; searchd reads them
// and owns only the per-kind filter indexes.
type Repo struct {
	store store
}

// New creates an entity repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndexes creates the per-kind filter indexes, tolerating indexes
// that already exist.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	for _, def := range indexDefinitions() {
		if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("create index %s: %w", def.Name, err)
		}
	}
	return nil
}

// Candidates fetches up to limit documents of one kind matching the filter
// expression, references expanded.
func (r *Repo) Candidates(
	ctx context.Context, kind domain.Kind, filters filter.Expression, limit int,
) ([]domain.Candidate, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: indexName(kind),
		Filters:   filters,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search %s candidates: %w", kind, err)
	}
	if result == nil || len(result.Entries) == 0 {
		return nil, nil
	}

	cands := make([]domain.Candidate, 0, len(result.Entries))
	for _, entry := range result.Entries {
		doc, ok := decodeDoc(entry.Fields["$"])
		if !ok {
			continue
		}
		cands = append(cands, domain.Candidate{ID: extractID(entry.Key, kind), Doc: doc})
	}

	if err := r.expandReferences(ctx, kind, cands); err != nil {
		return nil, err
	}
	return cands, nil
}

// ProjectNames lists stored project names for suggestion matching.
func (r *Repo) ProjectNames(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultNameScan
	}
	cands, err := r.Candidates(ctx, domain.KindProject, filter.Expression{}, limit)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cands))
	for _, c := range cands {
		if name, ok := c.Doc["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Upsert writes one entity document. Returns true when the key was created.
func (r *Repo) Upsert(ctx context.Context, kind domain.Kind, id string, doc map[string]any) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if id == "" {
		return false, fmt.Errorf("entity id is required")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal %s %s: %w", kind, id, err)
	}

	key := docKey(kind, id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}

	return !exists, nil
}

// Doc is one entity payload for batch ingestion.
type Doc struct {
	Kind domain.Kind
	ID   string
	Body map[string]any
}

// UpsertMulti writes a batch of entity documents in one pipelined round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, docs []Doc) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.JSONSetItem, len(docs))
	for i, d := range docs {
		if !d.Kind.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownKind, d.Kind)
		}
		if d.ID == "" {
			return fmt.Errorf("entity id is required")
		}
		data, err := json.Marshal(d.Body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", d.Kind, d.ID, err)
		}
		items[i] = db.JSONSetItem{Key: docKey(d.Kind, d.ID), Path: "$", Data: data}
	}

	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return fmt.Errorf("json.set batch: %w", err)
	}
	return nil
}

// Count reports how many documents of one kind are stored.
func (r *Repo) Count(ctx context.Context, kind domain.Kind) (int, error) {
	if !kind.IsValid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	n, err := r.store.SearchCount(ctx, indexName(kind), filter.Expression{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// decodeDoc parses a stored JSON entity document into a generic map.
// Malformed documents report false and are skipped by callers.
func decodeDoc(raw string) (map[string]any, bool) {
	if raw == "" {
		return nil, false
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false
	}
	return doc, true
}

// Store key patterns: searchd:{kind}:{id}, searchd:{kind}:idx

func docKey(kind domain.Kind, id string) string {
	return fmt.Sprintf("%s%s:%s", domain.KeyPrefix, kind, id)
}

func indexName(kind domain.Kind) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, kind)
}

func kindPrefix(kind domain.Kind) string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, kind)
}

func extractID(key string, kind domain.Kind) string {
	return strings.TrimPrefix(key, kindPrefix(kind))
}
