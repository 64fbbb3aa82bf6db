// Package savedfilter models reusable, access-controlled search filter presets.
package savedfilter

import (
	"fmt"
	"time"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// Field size limits.
const (
	MaxNameLength        = 128
	MaxDescriptionLength = 512
)

// Scope says who a filter is shared with beyond its owner.
type Scope string

const (
	// ScopePrivate keeps the filter visible to the owner only.
	ScopePrivate Scope = "private"
	// ScopeTeam shares the filter with the listed teams.
	ScopeTeam Scope = "team"
	// ScopeOrganization shares the filter with every authenticated user.
	ScopeOrganization Scope = "organization"
	// ScopeCustom shares the filter with the listed users and teams.
	ScopeCustom Scope = "custom"
)

// IsValid checks if the scope is supported.
func (s Scope) IsValid() bool {
	switch s {
	case ScopePrivate, ScopeTeam, ScopeOrganization, ScopeCustom:
		return true
	}
	return false
}

// Sharing describes the audience a filter is shared with.
type Sharing struct {
	scope Scope
	teams []string
	users []string
}

// NewSharing validates and creates a Sharing. Empty scope defaults to private.
func NewSharing(scope Scope, teams, users []string) (Sharing, error) {
	if scope == "" {
		scope = ScopePrivate
	}
	if !scope.IsValid() {
		return Sharing{}, fmt.Errorf("invalid sharing scope: %q", scope)
	}
	return Sharing{scope: scope, teams: teams, users: users}, nil
}

// Scope returns the sharing scope.
func (s Sharing) Scope() Scope { return s.scope }

// Teams returns the team ids the filter is shared with.
func (s Sharing) Teams() []string { return s.teams }

// Users returns the user ids the filter is shared with.
func (s Sharing) Users() []string { return s.users }

// SavedFilter is a reusable filter preset (immutable value object).
type SavedFilter struct {
	id          string
	name        string
	description string
	entityTypes []domain.Kind
	criteria    filter.Set
	owner       string
	sharing     Sharing
	isPublic    bool
	createdAt   int64
	updatedAt   int64
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrFilterName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: too long (max %d)", domain.ErrFilterName, MaxNameLength)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: too long (max %d)", domain.ErrFilterDescription, MaxDescriptionLength)
	}
	return nil
}

func validateEntityTypes(names []string) ([]domain.Kind, error) {
	if len(names) == 0 {
		return nil, domain.ErrNoEntityTypes
	}
	kinds := make([]domain.Kind, 0, len(names))
	seen := make(map[domain.Kind]bool, len(names))
	for _, name := range names {
		k := domain.Kind(name)
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, name)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// New validates and creates a SavedFilter.
// Name: 1-128 chars. EntityTypes: at least one known kind, duplicates collapse.
func New(
	id, name, description string, entityTypes []string,
	criteria filter.Set, owner string, sharing Sharing, isPublic bool,
) (SavedFilter, error) {
	if id == "" {
		return SavedFilter{}, fmt.Errorf("saved filter id is required")
	}
	if err := validateName(name); err != nil {
		return SavedFilter{}, err
	}
	if err := validateDescription(description); err != nil {
		return SavedFilter{}, err
	}
	if owner == "" {
		return SavedFilter{}, fmt.Errorf("saved filter owner is required")
	}
	kinds, err := validateEntityTypes(entityTypes)
	if err != nil {
		return SavedFilter{}, err
	}
	if sharing.scope == "" {
		sharing.scope = ScopePrivate
	}

	now := time.Now().UnixMilli()
	return SavedFilter{
		id:          id,
		name:        name,
		description: description,
		entityTypes: kinds,
		criteria:    criteria,
		owner:       owner,
		sharing:     sharing,
		isPublic:    isPublic,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct creates a SavedFilter without validation (storage hydration).
func Reconstruct(
	id, name, description string, entityTypes []domain.Kind,
	criteria filter.Set, owner string, sharing Sharing, isPublic bool,
	createdAt, updatedAt int64,
) SavedFilter {
	if sharing.scope == "" {
		sharing.scope = ScopePrivate
	}
	return SavedFilter{
		id:          id,
		name:        name,
		description: description,
		entityTypes: entityTypes,
		criteria:    criteria,
		owner:       owner,
		sharing:     sharing,
		isPublic:    isPublic,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the filter identifier.
func (f SavedFilter) ID() string { return f.id }

// Name returns the display name.
func (f SavedFilter) Name() string { return f.name }

// Description returns the display description.
func (f SavedFilter) Description() string { return f.description }

// EntityTypes returns the kinds the preset applies to.
func (f SavedFilter) EntityTypes() []domain.Kind { return f.entityTypes }

// Criteria returns the stored per-entity filter set.
func (f SavedFilter) Criteria() filter.Set { return f.criteria }

// Owner returns the owning user id.
func (f SavedFilter) Owner() string { return f.owner }

// Sharing returns the sharing audience.
func (f SavedFilter) Sharing() Sharing { return f.sharing }

// IsPublic reports whether the filter is visible to everyone.
func (f SavedFilter) IsPublic() bool { return f.isPublic }

// CreatedAt returns the creation timestamp (unix millis).
func (f SavedFilter) CreatedAt() int64 { return f.createdAt }

// UpdatedAt returns the last modification timestamp (unix millis).
func (f SavedFilter) UpdatedAt() int64 { return f.updatedAt }

// VisibleTo reports whether the actor can see this filter in listings.
func (f SavedFilter) VisibleTo(actor domain.Actor) bool {
	if f.owner == actor.ID() || f.isPublic {
		return true
	}
	switch f.sharing.scope {
	case ScopeOrganization:
		return true
	case ScopeTeam:
		return f.sharedWithAnyTeam(actor)
	case ScopeCustom:
		return f.sharedWithUser(actor) || f.sharedWithAnyTeam(actor)
	}
	return false
}

// CanModify reports whether the actor may update or delete this filter.
// A public filter is modifiable by any requester, not just its owner.
func (f SavedFilter) CanModify(actor domain.Actor) bool {
	return f.owner == actor.ID() || f.isPublic
}

func (f SavedFilter) sharedWithUser(actor domain.Actor) bool {
	for _, u := range f.sharing.users {
		if u == actor.ID() {
			return true
		}
	}
	return false
}

func (f SavedFilter) sharedWithAnyTeam(actor domain.Actor) bool {
	for _, t := range f.sharing.teams {
		if actor.InTeam(t) {
			return true
		}
	}
	return false
}
