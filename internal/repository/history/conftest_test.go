package history

import (
	"context"
	"testing"

	"github.com/agilesafe/searchd/internal/db"
	domhist "github.com/agilesafe/searchd/internal/domain/history"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testRecord(t *testing.T, id string, createdAt int64) domhist.Record {
	t.Helper()
	filters := filter.Set{
		Story: filter.StoryFilter{Statuses: []string{"in_progress"}, Priorities: []string{"high"}},
	}
	return domhist.Reconstruct(
		id, "u1", "payment flow", filters, 7,
		[]string{"payment flow", "Checkout flow"}, createdAt,
	)
}
