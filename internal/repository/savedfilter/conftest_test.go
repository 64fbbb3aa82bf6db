package savedfilter

import (
	"context"
	"testing"

	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn     func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn     func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
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

func mustSharing(t *testing.T, scope domsaved.Scope, teams, users []string) domsaved.Sharing {
	t.Helper()
	s, err := domsaved.NewSharing(scope, teams, users)
	if err != nil {
		t.Fatalf("NewSharing: %v", err)
	}
	return s
}

func mustActor(t *testing.T, id string, teams []string) domain.Actor {
	t.Helper()
	a, err := domain.NewActor(id, teams)
	if err != nil {
		t.Fatalf("NewActor: %v", err)
	}
	return a
}

// testFilter builds a team-scoped preset owned by u1 with fixed timestamps.
func testFilter(t *testing.T, id string) domsaved.SavedFilter {
	t.Helper()
	criteria := filter.Set{
		Story: filter.StoryFilter{Statuses: []string{"in_progress"}},
	}
	return domsaved.Reconstruct(
		id, "Active stories", "platform team board",
		[]domain.Kind{domain.KindStory, domain.KindTask}, criteria,
		"u1", mustSharing(t, domsaved.ScopeTeam, []string{"platform"}, nil),
		false, 1700000000000, 1700000001000,
	)
}
