package searchd

import (
	"errors"
	"testing"
	"time"

	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
	"github.com/agilesafe/searchd/internal/domain/search/result"
)

func TestToInternalActor(t *testing.T) {
	act, err := toInternalActor(Actor{ID: "u1", Teams: []string{"platform", "qa"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act.ID() != "u1" {
		t.Errorf("ID = %q, want u1", act.ID())
	}
	if !act.InTeam("qa") {
		t.Error("expected team membership qa")
	}
}

func TestToInternalActor_MissingID(t *testing.T) {
	_, err := toInternalActor(Actor{})
	if !errors.Is(err, domain.ErrActorRequired) {
		t.Fatalf("err = %v, want ErrActorRequired", err)
	}
}

func TestToInternalFilters(t *testing.T) {
	active := false
	set := toInternalFilters(Filters{
		Project: ProjectFilter{Teams: []string{"platform"}},
		Story:   StoryFilter{Statuses: []string{"in_progress"}, Assignees: []string{"u1"}},
		User:    UserFilter{Roles: []string{"dev"}, Active: &active},
	})

	if set.Project.Teams[0] != "platform" {
		t.Errorf("project teams = %v", set.Project.Teams)
	}
	if set.Story.Statuses[0] != "in_progress" || set.Story.Assignees[0] != "u1" {
		t.Errorf("story filter = %+v", set.Story)
	}
	if set.User.Active == nil || *set.User.Active {
		t.Errorf("user active = %v, want false", set.User.Active)
	}
}

func TestFilters_RoundTrip(t *testing.T) {
	active := true
	in := Filters{
		Sprint: SprintFilter{Projects: []string{"p1"}, Statuses: []string{"active"}},
		Task:   TaskFilter{Stories: []string{"s1"}, Priorities: []string{"high"}},
		User:   UserFilter{Teams: []string{"qa"}, Active: &active},
	}

	out := fromInternalFilters(toInternalFilters(in))
	if out.Sprint.Projects[0] != "p1" || out.Sprint.Statuses[0] != "active" {
		t.Errorf("sprint = %+v", out.Sprint)
	}
	if out.Task.Stories[0] != "s1" || out.Task.Priorities[0] != "high" {
		t.Errorf("task = %+v", out.Task)
	}
	if out.User.Active == nil || !*out.User.Active {
		t.Errorf("user active = %v, want true", out.User.Active)
	}
}

func TestFromEnvelope(t *testing.T) {
	groups := map[domain.Kind][]result.Item{
		domain.KindStory: {
			result.NewItem("s1", domain.KindStory, "Payment flow", "Checkout redesign",
				map[string]string{"status": "in_progress"}, "book", "/stories/s1", 1.0),
		},
		domain.KindUser: {
			result.NewItem("u7", domain.KindUser, "Pat Doyle", "",
				map[string]string{"role": "dev"}, "person", "/users/u7", 0.62),
		},
	}
	env := result.NewEnvelope("payment", groups)

	res := fromEnvelope(&env)
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if len(res.Projects) != 0 || len(res.Sprints) != 0 || len(res.Tasks) != 0 {
		t.Error("expected empty groups for kinds without hits")
	}
	if len(res.Stories) != 1 {
		t.Fatalf("len(Stories) = %d, want 1", len(res.Stories))
	}

	story := res.Stories[0]
	if story.ID != "s1" || story.Type != "story" {
		t.Errorf("story identity = %s/%s", story.ID, story.Type)
	}
	if story.Title != "Payment flow" || story.Description != "Checkout redesign" {
		t.Errorf("story display = %q/%q", story.Title, story.Description)
	}
	if story.Fields["status"] != "in_progress" {
		t.Errorf("story fields = %v", story.Fields)
	}
	if story.Icon != "book" || story.URL != "/stories/s1" || story.Score != 1.0 {
		t.Errorf("story presentation = %q/%q/%f", story.Icon, story.URL, story.Score)
	}

	if len(res.Suggestions) != 3 || res.Suggestions[0] != "payment" {
		t.Errorf("suggestions = %v", res.Suggestions)
	}
}

func TestFromItems_Empty(t *testing.T) {
	items := fromItems(nil)
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}

func TestToInternalSharing_DefaultsToPrivate(t *testing.T) {
	sh, err := toInternalSharing(Sharing{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sh.Scope() != domsaved.ScopePrivate {
		t.Errorf("scope = %q, want private", sh.Scope())
	}
}

func TestToInternalSharing_InvalidScope(t *testing.T) {
	_, err := toInternalSharing(Sharing{Scope: "everyone"})
	if err == nil {
		t.Fatal("expected error for unknown scope")
	}
}

func TestFromSavedFilter(t *testing.T) {
	sh, _ := domsaved.NewSharing(domsaved.ScopeTeam, []string{"platform"}, nil)
	f := domsaved.Reconstruct(
		"f1", "Sprint focus", "active sprint work",
		[]domain.Kind{domain.KindStory, domain.KindTask},
		filter.Set{Story: filter.StoryFilter{Statuses: []string{"in_progress"}}},
		"u1", sh, false, 1000, 2000,
	)

	out := fromSavedFilter(f)
	if out.ID != "f1" || out.Name != "Sprint focus" || out.Owner != "u1" {
		t.Errorf("identity = %s/%s/%s", out.ID, out.Name, out.Owner)
	}
	if len(out.EntityTypes) != 2 || out.EntityTypes[0] != "story" || out.EntityTypes[1] != "task" {
		t.Errorf("entity types = %v", out.EntityTypes)
	}
	if out.Criteria.Story.Statuses[0] != "in_progress" {
		t.Errorf("criteria = %+v", out.Criteria.Story)
	}
	if out.Sharing.Scope != "team" || out.Sharing.Teams[0] != "platform" {
		t.Errorf("sharing = %+v", out.Sharing)
	}
	if !out.CreatedAt.Equal(time.UnixMilli(1000)) {
		t.Errorf("CreatedAt = %v, want unix milli 1000", out.CreatedAt)
	}
	if !out.UpdatedAt.Equal(time.UnixMilli(2000)) {
		t.Errorf("UpdatedAt = %v, want unix milli 2000", out.UpdatedAt)
	}
}

func TestToInternalPatch(t *testing.T) {
	name := "Renamed"
	criteria := Filters{Task: TaskFilter{Statuses: []string{"done"}}}
	sharing := Sharing{Scope: "organization"}
	p, err := toInternalPatch(FilterPatch{Name: &name, Criteria: &criteria, Sharing: &sharing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sh, _ := domsaved.NewSharing(domsaved.ScopePrivate, nil, nil)
	base := domsaved.Reconstruct(
		"f1", "Old", "", []domain.Kind{domain.KindTask},
		filter.Set{}, "u1", sh, false, 1000, 1000,
	)
	updated, err := base.Apply(p)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if updated.Name() != "Renamed" {
		t.Errorf("name = %q, want Renamed", updated.Name())
	}
	if updated.Criteria().Task.Statuses[0] != "done" {
		t.Errorf("criteria = %+v", updated.Criteria().Task)
	}
	if updated.Sharing().Scope() != domsaved.ScopeOrganization {
		t.Errorf("scope = %q, want organization", updated.Sharing().Scope())
	}
}

func TestToInternalPatch_Empty(t *testing.T) {
	_, err := toInternalPatch(FilterPatch{})
	if err == nil {
		t.Fatal("expected error for empty patch")
	}
}

func TestToInternalPatch_InvalidSharing(t *testing.T) {
	sharing := Sharing{Scope: "world"}
	_, err := toInternalPatch(FilterPatch{Sharing: &sharing})
	if err == nil {
		t.Fatal("expected error for unknown scope")
	}
}

func TestSearchOptionFunctions(t *testing.T) {
	var cfg searchConfig
	WithKinds("story", "task")(&cfg)
	WithLimit(10)(&cfg)
	WithFilters(Filters{Story: StoryFilter{Statuses: []string{"done"}}})(&cfg)

	if len(cfg.kinds) != 2 || cfg.kinds[0] != "story" {
		t.Errorf("kinds = %v", cfg.kinds)
	}
	if cfg.limit != 10 {
		t.Errorf("limit = %d, want 10", cfg.limit)
	}
	if cfg.filters.Story.Statuses[0] != "done" {
		t.Errorf("filters = %+v", cfg.filters.Story)
	}
}

func TestFilterOptionFunctions(t *testing.T) {
	var cfg filterConfig
	WithDescription("active sprint work")(&cfg)
	WithCriteria(Filters{Sprint: SprintFilter{Statuses: []string{"active"}}})(&cfg)
	WithSharing(Sharing{Scope: "team", Teams: []string{"platform"}})(&cfg)
	AsPublic()(&cfg)

	if cfg.description != "active sprint work" {
		t.Errorf("description = %q", cfg.description)
	}
	if cfg.criteria.Sprint.Statuses[0] != "active" {
		t.Errorf("criteria = %+v", cfg.criteria.Sprint)
	}
	if cfg.sharing.Scope != "team" || cfg.sharing.Teams[0] != "platform" {
		t.Errorf("sharing = %+v", cfg.sharing)
	}
	if !cfg.isPublic {
		t.Error("expected isPublic true")
	}
}
