package searchd

import "time"

// Actor identifies the platform user a call acts on behalf of.
type Actor struct {
	ID    string
	Teams []string
}

// Filters bundles the optional per-entity narrowing criteria. The zero
// value matches everything for every type.
type Filters struct {
	Project ProjectFilter
	Sprint  SprintFilter
	Story   StoryFilter
	Task    TaskFilter
	User    UserFilter
}

// ProjectFilter narrows project candidates.
type ProjectFilter struct {
	Teams    []string
	Statuses []string
}

// SprintFilter narrows sprint candidates.
type SprintFilter struct {
	Projects []string
	Statuses []string
}

// StoryFilter narrows story candidates.
type StoryFilter struct {
	Projects   []string
	Statuses   []string
	Priorities []string
	Assignees  []string
}

// TaskFilter narrows task candidates.
type TaskFilter struct {
	Stories    []string
	Statuses   []string
	Priorities []string
	Assignees  []string
}

// UserFilter narrows user candidates. Active is tri-state: nil means no
// condition.
type UserFilter struct {
	Roles  []string
	Teams  []string
	Active *bool
}

// Document is one entity payload for batch ingestion. Type is the entity
// kind (project, sprint, story, task, user).
type Document struct {
	Type   string
	ID     string
	Fields map[string]any
}

// Item is one ranked hit. Fields carries the type-specific extras
// (status, priority, parent names, role, team).
type Item struct {
	ID          string
	Type        string
	Title       string
	Description string
	Fields      map[string]string
	Icon        string
	URL         string
	Score       float64
}

// Results groups ranked hits per entity type, with the overall hit count
// and derived follow-up suggestions.
type Results struct {
	Projects    []Item
	Sprints     []Item
	Stories     []Item
	Tasks       []Item
	Users       []Item
	Total       int
	Suggestions []string
}

// Sharing describes the audience a saved filter is shared with.
// Scope is one of: private, team, organization, custom.
type Sharing struct {
	Scope string
	Teams []string
	Users []string
}

// SavedFilter is a reusable filter preset.
type SavedFilter struct {
	ID          string
	Name        string
	Description string
	EntityTypes []string
	Criteria    Filters
	Owner       string
	Sharing     Sharing
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FilterPatch is a partial saved filter update. Nil fields stay unchanged.
type FilterPatch struct {
	Name        *string
	Description *string
	EntityTypes []string
	Criteria    *Filters
	Sharing     *Sharing
	IsPublic    *bool
}
