package filter

import "strconv"

// Set bundles the optional per-entity filters attached to one search
// request or saved as filter criteria. The zero value matches everything
// for every kind. The JSON tags define the one shape shared by request
// bodies, history snapshots and saved filter criteria.
type Set struct {
	Project ProjectFilter `json:"project"`
	Sprint  SprintFilter  `json:"sprint"`
	Story   StoryFilter   `json:"story"`
	Task    TaskFilter    `json:"task"`
	User    UserFilter    `json:"user"`
}

// ProjectFilter narrows project candidates.
type ProjectFilter struct {
	Teams    []string `json:"teams,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
}

// Expression compiles the filter into a conjunctive fetch predicate.
// Empty attribute sets contribute no condition.
func (f ProjectFilter) Expression() Expression {
	return conjunction(
		in("team", f.Teams),
		in("status", f.Statuses),
	)
}

// SprintFilter narrows sprint candidates.
type SprintFilter struct {
	Projects []string `json:"projects,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
}

// Expression compiles the filter into a conjunctive fetch predicate.
func (f SprintFilter) Expression() Expression {
	return conjunction(
		in("project", f.Projects),
		in("status", f.Statuses),
	)
}

// StoryFilter narrows story candidates.
type StoryFilter struct {
	Projects   []string `json:"projects,omitempty"`
	Statuses   []string `json:"statuses,omitempty"`
	Priorities []string `json:"priorities,omitempty"`
	Assignees  []string `json:"assignees,omitempty"`
}

// Expression compiles the filter into a conjunctive fetch predicate.
func (f StoryFilter) Expression() Expression {
	return conjunction(
		in("project", f.Projects),
		in("status", f.Statuses),
		in("priority", f.Priorities),
		in("assignee", f.Assignees),
	)
}

// TaskFilter narrows task candidates.
type TaskFilter struct {
	Stories    []string `json:"stories,omitempty"`
	Statuses   []string `json:"statuses,omitempty"`
	Priorities []string `json:"priorities,omitempty"`
	Assignees  []string `json:"assignees,omitempty"`
}

// Expression compiles the filter into a conjunctive fetch predicate.
func (f TaskFilter) Expression() Expression {
	return conjunction(
		in("story", f.Stories),
		in("status", f.Statuses),
		in("priority", f.Priorities),
		in("assignee", f.Assignees),
	)
}

// UserFilter narrows user candidates. Active is tri-state: nil means no
// condition; false is a real filter value, not an absence.
type UserFilter struct {
	Roles  []string `json:"roles,omitempty"`
	Teams  []string `json:"teams,omitempty"`
	Active *bool    `json:"active,omitempty"`
}

// Expression compiles the filter into a conjunctive fetch predicate.
func (f UserFilter) Expression() Expression {
	conds := []*Condition{
		in("role", f.Roles),
		in("team", f.Teams),
	}
	if f.Active != nil {
		conds = append(conds, in("isActive", []string{strconv.FormatBool(*f.Active)}))
	}
	return conjunction(conds...)
}

// in builds a membership condition, dropping blank values. Returns nil
// when no usable values remain.
func in(key string, values []string) *Condition {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return nil
	}
	return &Condition{key: key, values: clean}
}

// conjunction assembles the non-nil conditions into a must-only expression.
func conjunction(conds ...*Condition) Expression {
	must := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			must = append(must, *c)
		}
	}
	return Expression{must: must}
}
