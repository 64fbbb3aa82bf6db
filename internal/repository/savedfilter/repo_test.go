package savedfilter

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
)

// --- EnsureIndex ---

func TestEnsureIndex_Definition(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		got = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "searchd:filter:idx" {
		t.Fatalf("unexpected index name: %s", got.Name)
	}
	if got.StorageType != db.StorageJSON {
		t.Fatalf("expected JSON storage, got %s", got.StorageType)
	}
	if !reflect.DeepEqual(got.Prefixes, []string{"searchd:filter:"}) {
		t.Fatalf("unexpected prefixes: %v", got.Prefixes)
	}

	aliases := make([]string, len(got.Fields))
	for i := range got.Fields {
		aliases[i] = got.Fields[i].Key()
	}
	want := []string{"owner", "scope", "isPublic", "sharedUsers", "sharedTeams", "updatedAt"}
	if !reflect.DeepEqual(aliases, want) {
		t.Fatalf("expected aliases %v, got %v", want, aliases)
	}
	last := got.Fields[len(got.Fields)-1]
	if last.Type != db.IndexFieldNumeric || !last.Sortable {
		t.Fatalf("expected updatedAt NUMERIC SORTABLE, got %+v", last)
	}
}

func TestEnsureIndex_ToleratesExisting(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		return db.ErrIndexExists
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Save / Get ---

func TestSave_WritesFlattenedDocument(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey, gotPath string
	var gotData []byte
	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		gotKey, gotPath, gotData = key, path, data
		return nil
	}

	if err := repo.Save(context.Background(), testFilter(t, "f1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "searchd:filter:f1" || gotPath != "$" {
		t.Fatalf("unexpected write target: %s %s", gotKey, gotPath)
	}

	var doc map[string]any
	if err := json.Unmarshal(gotData, &doc); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if doc["owner"] != "u1" || doc["scope"] != "team" || doc["isPublic"] != false {
		t.Fatalf("sharing not flattened: %v", doc)
	}
	if doc["name"] != "Active stories" {
		t.Fatalf("unexpected name: %v", doc["name"])
	}
}

func TestGet_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)

	stored, _ := json.Marshal([]filterDoc{filterToDoc(testFilter(t, "f1"))})
	ms.jsonGetFn = func(_ context.Context, key string, paths ...string) ([]byte, error) {
		if key != "searchd:filter:f1" {
			t.Errorf("unexpected key: %s", key)
		}
		if len(paths) != 1 || paths[0] != "$" {
			t.Errorf("unexpected paths: %v", paths)
		}
		return stored, nil
	}

	f, err := repo.Get(context.Background(), "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID() != "f1" || f.Name() != "Active stories" {
		t.Fatalf("unexpected filter: %s %s", f.ID(), f.Name())
	}
	if f.Sharing().Scope() != domsaved.ScopeTeam {
		t.Fatalf("unexpected scope: %s", f.Sharing().Scope())
	}
	if !reflect.DeepEqual(f.EntityTypes(), []domain.Kind{domain.KindStory, domain.KindTask}) {
		t.Fatalf("unexpected entity types: %v", f.EntityTypes())
	}
	if !reflect.DeepEqual(f.Criteria(), testFilter(t, "f1").Criteria()) {
		t.Fatalf("criteria changed: %+v", f.Criteria())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrFilterNotFound) {
		t.Fatalf("expected ErrFilterNotFound, got %v", err)
	}
}

func TestGet_EmptyArrayReply(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(`[]`), nil
	}

	_, err := repo.Get(context.Background(), "f1")
	if !errors.Is(err, domain.ErrFilterNotFound) {
		t.Fatalf("expected ErrFilterNotFound, got %v", err)
	}
}

func TestGet_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, errors.New("connection reset")
	}

	if _, err := repo.Get(context.Background(), "f1"); err == nil {
		t.Fatal("expected error on JSONGet failure")
	}
}

// --- Delete ---

func TestDelete_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	var deleted string
	ms.delFn = func(_ context.Context, key string) error {
		deleted = key
		return nil
	}

	if err := repo.Delete(context.Background(), "f1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "searchd:filter:f1" {
		t.Fatalf("unexpected key: %s", deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrFilterNotFound) {
		t.Fatalf("expected ErrFilterNotFound, got %v", err)
	}
}

func TestDelete_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.delFn = func(_ context.Context, _ string) error {
		return errors.New("readonly replica")
	}

	if err := repo.Delete(context.Background(), "f1"); err == nil {
		t.Fatal("expected error on Del failure")
	}
}

// --- ListVisible ---

func TestListVisible_QueryShape(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.IndexName != "searchd:filter:idx" {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.SortBy != "updatedAt" || !q.SortDesc {
			t.Errorf("expected updatedAt DESC sort, got %s desc=%v", q.SortBy, q.SortDesc)
		}
		if len(q.Filters.Must()) != 0 {
			t.Errorf("expected no must conditions, got %v", q.Filters.Must())
		}

		keys := make([]string, 0, len(q.Filters.Should()))
		for _, c := range q.Filters.Should() {
			keys = append(keys, c.Key())
		}
		want := []string{"owner", "isPublic", "scope", "sharedUsers", "sharedTeams"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("expected grant keys %v, got %v", want, keys)
		}

		teams := q.Filters.Should()[4]
		if !teams.Matches("platform") || !teams.Matches("mobile") {
			t.Errorf("team grant missing values: %v", teams.Values())
		}
		return &db.SearchResult{}, nil
	}

	actor := mustActor(t, "u1", []string{"platform", "mobile"})
	if _, err := repo.ListVisible(context.Background(), actor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListVisible_NoTeamsDropsTeamGrant(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if len(q.Filters.Should()) != 4 {
			t.Errorf("expected 4 grants without teams, got %d", len(q.Filters.Should()))
		}
		return &db.SearchResult{}, nil
	}

	if _, err := repo.ListVisible(context.Background(), mustActor(t, "u1", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListVisible_Hydrates(t *testing.T) {
	repo, ms := newTestRepo(t)

	newer, _ := json.Marshal(filterToDoc(testFilter(t, "f2")))
	older, _ := json.Marshal(filterToDoc(testFilter(t, "f1")))
	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: "searchd:filter:f2", Fields: map[string]string{"$": string(newer)}},
				{Key: "searchd:filter:f1", Fields: map[string]string{"$": string(older)}},
			},
		}, nil
	}

	filters, err := repo.ListVisible(context.Background(), mustActor(t, "u1", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(filters))
	}
	if filters[0].ID() != "f2" || filters[1].ID() != "f1" {
		t.Fatalf("unexpected order: %s, %s", filters[0].ID(), filters[1].ID())
	}
}

func TestListVisible_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 0}, nil
	}

	filters, err := repo.ListVisible(context.Background(), mustActor(t, "u1", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filters) != 0 {
		t.Fatalf("expected no filters, got %d", len(filters))
	}
}

func TestListVisible_CorruptDocument(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total:   1,
			Entries: []db.SearchEntry{{Key: "searchd:filter:f1", Fields: map[string]string{"$": `{broken`}}},
		}, nil
	}

	if _, err := repo.ListVisible(context.Background(), mustActor(t, "u1", nil)); err == nil {
		t.Fatal("expected error for corrupt document")
	}
}

// --- dto ---

func TestFilterDocRoundTrip(t *testing.T) {
	orig := testFilter(t, "f1")

	back := docToFilter(filterToDoc(orig))
	if !reflect.DeepEqual(back, orig) {
		t.Fatalf("round trip changed the filter:\n%+v\n%+v", back, orig)
	}
}

func TestDocToFilter_UnknownScope(t *testing.T) {
	doc := filterToDoc(testFilter(t, "f1"))
	doc.Scope = "galaxy"

	f := docToFilter(doc)
	if f.Sharing().Scope() != domsaved.ScopePrivate {
		t.Fatalf("expected private fallback, got %s", f.Sharing().Scope())
	}
}
