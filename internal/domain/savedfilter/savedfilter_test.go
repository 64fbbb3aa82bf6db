package savedfilter

import (
	"errors"
	"strings"
	"testing"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

func actor(t *testing.T, id string, teams ...string) domain.Actor {
	t.Helper()
	a, err := domain.NewActor(id, teams)
	if err != nil {
		t.Fatalf("NewActor: %v", err)
	}
	return a
}

func sharing(t *testing.T, scope Scope, teams, users []string) Sharing {
	t.Helper()
	s, err := NewSharing(scope, teams, users)
	if err != nil {
		t.Fatalf("NewSharing: %v", err)
	}
	return s
}

func mustNew(t *testing.T, owner string, s Sharing, isPublic bool) SavedFilter {
	t.Helper()
	f, err := New("f1", "My tasks", "", []string{"task"}, filter.Set{}, owner, s, isPublic)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNew_Valid(t *testing.T) {
	criteria := filter.Set{Task: filter.TaskFilter{Statuses: []string{"open"}}}
	f, err := New("f1", "Open tasks", "tasks not yet started", []string{"task", "story"},
		criteria, "u1", Sharing{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID() != "f1" {
		t.Errorf("ID() = %q", f.ID())
	}
	if f.Name() != "Open tasks" {
		t.Errorf("Name() = %q", f.Name())
	}
	if f.Description() != "tasks not yet started" {
		t.Errorf("Description() = %q", f.Description())
	}
	if f.Owner() != "u1" {
		t.Errorf("Owner() = %q", f.Owner())
	}
	if len(f.EntityTypes()) != 2 {
		t.Errorf("EntityTypes() = %v", f.EntityTypes())
	}
	if f.Sharing().Scope() != ScopePrivate {
		t.Errorf("Scope() = %q, want private (default)", f.Sharing().Scope())
	}
	if f.IsPublic() {
		t.Error("IsPublic() = true")
	}
	if f.CreatedAt() == 0 {
		t.Error("CreatedAt() = 0")
	}
	if f.UpdatedAt() != f.CreatedAt() {
		t.Errorf("UpdatedAt() = %d, want %d", f.UpdatedAt(), f.CreatedAt())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		fname   string
		types   []string
		owner   string
		wantErr error
	}{
		{"missing name", "f1", "", []string{"task"}, "u1", domain.ErrFilterName},
		{"no entity types", "f1", "n", nil, "u1", domain.ErrNoEntityTypes},
		{"empty entity types", "f1", "n", []string{}, "u1", domain.ErrNoEntityTypes},
		{"unknown entity type", "f1", "n", []string{"epic"}, "u1", domain.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.fname, "", tt.types, filter.Set{}, tt.owner, Sharing{}, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_MissingIDAndOwner(t *testing.T) {
	if _, err := New("", "n", "", []string{"task"}, filter.Set{}, "u1", Sharing{}, false); err == nil {
		t.Error("expected error for missing id")
	}
	if _, err := New("f1", "n", "", []string{"task"}, filter.Set{}, "", Sharing{}, false); err == nil {
		t.Error("expected error for missing owner")
	}
}

func TestNew_NameTooLong(t *testing.T) {
	_, err := New("f1", strings.Repeat("x", MaxNameLength+1), "", []string{"task"},
		filter.Set{}, "u1", Sharing{}, false)
	if err == nil || !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %v", err)
	}
}

func TestNew_DuplicateEntityTypesCollapse(t *testing.T) {
	f, err := New("f1", "n", "", []string{"task", "task", "story"}, filter.Set{}, "u1", Sharing{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.EntityTypes()) != 2 {
		t.Errorf("EntityTypes() = %v, want 2 entries", f.EntityTypes())
	}
}

func TestNewSharing(t *testing.T) {
	s, err := NewSharing("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Scope() != ScopePrivate {
		t.Errorf("Scope() = %q, want private", s.Scope())
	}

	if _, err := NewSharing("everyone", nil, nil); err == nil {
		t.Error("expected error for unknown scope")
	}

	for _, scope := range []Scope{ScopePrivate, ScopeTeam, ScopeOrganization, ScopeCustom} {
		if _, err := NewSharing(scope, nil, nil); err != nil {
			t.Errorf("unexpected error for scope %q: %v", scope, err)
		}
	}
}

func TestVisibleTo(t *testing.T) {
	owner := actor(t, "u1", "team-a")
	teammate := actor(t, "u2", "team-a")
	outsider := actor(t, "u3", "team-z")
	invitee := actor(t, "u4")

	tests := []struct {
		name   string
		filter SavedFilter
		actor  domain.Actor
		want   bool
	}{
		{"owner sees private", mustNew(t, "u1", sharing(t, ScopePrivate, nil, nil), false), owner, true},
		{"non-owner blind to private", mustNew(t, "u1", sharing(t, ScopePrivate, nil, nil), false), teammate, false},
		{"public visible to anyone", mustNew(t, "u1", sharing(t, ScopePrivate, nil, nil), true), outsider, true},
		{"org scope visible to anyone", mustNew(t, "u1", sharing(t, ScopeOrganization, nil, nil), false), outsider, true},
		{"team scope visible to member", mustNew(t, "u1", sharing(t, ScopeTeam, []string{"team-a"}, nil), false), teammate, true},
		{"team scope blind to non-member", mustNew(t, "u1", sharing(t, ScopeTeam, []string{"team-a"}, nil), false), outsider, false},
		{"custom scope visible to listed user", mustNew(t, "u1", sharing(t, ScopeCustom, nil, []string{"u4"}), false), invitee, true},
		{"custom scope visible to listed team", mustNew(t, "u1", sharing(t, ScopeCustom, []string{"team-a"}, nil), false), teammate, true},
		{"custom scope blind to unlisted", mustNew(t, "u1", sharing(t, ScopeCustom, []string{"team-a"}, []string{"u4"}), false), outsider, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.VisibleTo(tt.actor); got != tt.want {
				t.Errorf("VisibleTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModify(t *testing.T) {
	owner := actor(t, "u1", "team-a")
	teammate := actor(t, "u2", "team-a")
	outsider := actor(t, "u3")

	private := mustNew(t, "u1", sharing(t, ScopePrivate, nil, nil), false)
	if !private.CanModify(owner) {
		t.Error("owner cannot modify own filter")
	}
	if private.CanModify(outsider) {
		t.Error("outsider can modify private filter")
	}

	// Visibility does not grant modification: a team member can see a
	// team-scoped filter but cannot change it.
	teamScoped := mustNew(t, "u1", sharing(t, ScopeTeam, []string{"team-a"}, nil), false)
	if !teamScoped.VisibleTo(teammate) {
		t.Fatal("teammate should see team-scoped filter")
	}
	if teamScoped.CanModify(teammate) {
		t.Error("teammate can modify team-scoped filter")
	}

	// Public filters are modifiable by any requester.
	public := mustNew(t, "u1", sharing(t, ScopePrivate, nil, nil), true)
	if !public.CanModify(outsider) {
		t.Error("outsider cannot modify public filter")
	}
}

func TestApply(t *testing.T) {
	f := mustNew(t, "u1", sharing(t, ScopePrivate, nil, nil), false)

	name := "Renamed"
	pub := true
	p, err := NewPatch(&name, nil, []string{"story"}, nil, nil, &pub)
	if err != nil {
		t.Fatalf("NewPatch: %v", err)
	}

	got, err := f.Apply(p)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Name() != "Renamed" {
		t.Errorf("Name() = %q", got.Name())
	}
	if len(got.EntityTypes()) != 1 || got.EntityTypes()[0] != domain.KindStory {
		t.Errorf("EntityTypes() = %v", got.EntityTypes())
	}
	if !got.IsPublic() {
		t.Error("IsPublic() = false")
	}
	// Unpatched fields survive.
	if got.Owner() != "u1" || got.ID() != f.ID() || got.Description() != f.Description() {
		t.Error("unpatched fields changed")
	}
	if got.CreatedAt() != f.CreatedAt() {
		t.Errorf("CreatedAt() = %d, want %d", got.CreatedAt(), f.CreatedAt())
	}
	if got.UpdatedAt() < f.UpdatedAt() {
		t.Errorf("UpdatedAt() = %d, want >= %d", got.UpdatedAt(), f.UpdatedAt())
	}
}

func TestApply_Invalid(t *testing.T) {
	f := mustNew(t, "u1", sharing(t, ScopePrivate, nil, nil), false)

	empty := ""
	p, err := NewPatch(&empty, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewPatch: %v", err)
	}
	if _, err := f.Apply(p); !errors.Is(err, domain.ErrFilterName) {
		t.Errorf("error = %v, want ErrFilterName", err)
	}

	p, err = NewPatch(nil, nil, []string{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewPatch: %v", err)
	}
	if _, err := f.Apply(p); !errors.Is(err, domain.ErrNoEntityTypes) {
		t.Errorf("error = %v, want ErrNoEntityTypes", err)
	}
}

func TestNewPatch_Empty(t *testing.T) {
	_, err := NewPatch(nil, nil, nil, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "at least one field") {
		t.Errorf("error = %q", err)
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	f := Reconstruct("f1", "", "", nil, filter.Set{}, "u1", Sharing{}, false, 100, 200)
	if f.Name() != "" {
		t.Errorf("Name() = %q", f.Name())
	}
	if f.Sharing().Scope() != ScopePrivate {
		t.Errorf("Scope() = %q, want private backfill", f.Sharing().Scope())
	}
	if f.CreatedAt() != 100 || f.UpdatedAt() != 200 {
		t.Errorf("timestamps = %d/%d", f.CreatedAt(), f.UpdatedAt())
	}
}
