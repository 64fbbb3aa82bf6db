package searchd

import (
	"context"
	"fmt"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
	"github.com/agilesafe/searchd/internal/domain/search/query"
	"github.com/agilesafe/searchd/internal/domain/search/result"
)

// SearchOption configures a single Search call.
type SearchOption func(*searchConfig)

type searchConfig struct {
	kinds   []string
	limit   int
	filters Filters
}

// WithKinds restricts the search to the named entity types
// (project, sprint, story, task, user). Unknown names are ignored;
// the default is all types.
func WithKinds(kinds ...string) SearchOption {
	return func(c *searchConfig) {
		c.kinds = kinds
	}
}

// WithLimit sets the per-type result budget. Default 5, capped at 50.
func WithLimit(limit int) SearchOption {
	return func(c *searchConfig) {
		c.limit = limit
	}
}

// WithFilters narrows candidates per entity type before ranking.
func WithFilters(f Filters) SearchOption {
	return func(c *searchConfig) {
		c.filters = f
	}
}

// Search runs a ranked cross-entity search and records it in the actor's
// history.
func (c *Client) Search(
	ctx context.Context, actor Actor, text string, opts ...SearchOption,
) (Results, error) {
	var sc searchConfig
	for _, o := range opts {
		o(&sc)
	}

	act, err := toInternalActor(actor)
	if err != nil {
		return Results{}, fmt.Errorf("search: %w", err)
	}

	q, err := query.New(text, toInternalFilters(sc.filters), sc.kinds, sc.limit)
	if err != nil {
		return Results{}, fmt.Errorf("search: %w", err)
	}

	env, err := c.searchSvc.Search(ctx, act, &q)
	if err != nil {
		return Results{}, fmt.Errorf("search: %w", err)
	}
	return fromEnvelope(&env), nil
}

// Suggestions returns typeahead completions for a partial query, merging
// the actor's recent searches with matching project names.
func (c *Client) Suggestions(ctx context.Context, actor Actor, partial string) ([]string, error) {
	act, err := toInternalActor(actor)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	out, err := c.suggestSvc.Suggest(ctx, act, partial)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return out, nil
}

func toInternalActor(a Actor) (domain.Actor, error) {
	return domain.NewActor(a.ID, a.Teams)
}

func toInternalFilters(f Filters) filter.Set {
	return filter.Set{
		Project: filter.ProjectFilter{
			Teams:    f.Project.Teams,
			Statuses: f.Project.Statuses,
		},
		Sprint: filter.SprintFilter{
			Projects: f.Sprint.Projects,
			Statuses: f.Sprint.Statuses,
		},
		Story: filter.StoryFilter{
			Projects:   f.Story.Projects,
			Statuses:   f.Story.Statuses,
			Priorities: f.Story.Priorities,
			Assignees:  f.Story.Assignees,
		},
		Task: filter.TaskFilter{
			Stories:    f.Task.Stories,
			Statuses:   f.Task.Statuses,
			Priorities: f.Task.Priorities,
			Assignees:  f.Task.Assignees,
		},
		User: filter.UserFilter{
			Roles:  f.User.Roles,
			Teams:  f.User.Teams,
			Active: f.User.Active,
		},
	}
}

func fromInternalFilters(s filter.Set) Filters {
	return Filters{
		Project: ProjectFilter{
			Teams:    s.Project.Teams,
			Statuses: s.Project.Statuses,
		},
		Sprint: SprintFilter{
			Projects: s.Sprint.Projects,
			Statuses: s.Sprint.Statuses,
		},
		Story: StoryFilter{
			Projects:   s.Story.Projects,
			Statuses:   s.Story.Statuses,
			Priorities: s.Story.Priorities,
			Assignees:  s.Story.Assignees,
		},
		Task: TaskFilter{
			Stories:    s.Task.Stories,
			Statuses:   s.Task.Statuses,
			Priorities: s.Task.Priorities,
			Assignees:  s.Task.Assignees,
		},
		User: UserFilter{
			Roles:  s.User.Roles,
			Teams:  s.User.Teams,
			Active: s.User.Active,
		},
	}
}

func fromEnvelope(env *result.Envelope) Results {
	return Results{
		Projects:    fromItems(env.Items(domain.KindProject)),
		Sprints:     fromItems(env.Items(domain.KindSprint)),
		Stories:     fromItems(env.Items(domain.KindStory)),
		Tasks:       fromItems(env.Items(domain.KindTask)),
		Users:       fromItems(env.Items(domain.KindUser)),
		Total:       env.Total(),
		Suggestions: env.Suggestions(),
	}
}

func fromItems(items []result.Item) []Item {
	out := make([]Item, len(items))
	for i := range items {
		it := &items[i]
		out[i] = Item{
			ID:          it.ID(),
			Type:        string(it.Kind()),
			Title:       it.Title(),
			Description: it.Description(),
			Fields:      it.Aux(),
			Icon:        it.Icon(),
			URL:         it.URL(),
			Score:       it.Score(),
		}
	}
	return out
}
