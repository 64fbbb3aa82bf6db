package savedfilter

import (
	"fmt"
	"time"

	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// Patch is a partial saved filter update. Nil fields are unchanged.
type Patch struct {
	name        *string
	description *string
	entityTypes []string
	criteria    *filter.Set
	sharing     *Sharing
	isPublic    *bool
}

// NewPatch validates and creates a Patch. At least one field must be provided.
func NewPatch(
	name, description *string, entityTypes []string,
	criteria *filter.Set, sharing *Sharing, isPublic *bool,
) (Patch, error) {
	if name == nil && description == nil && entityTypes == nil &&
		criteria == nil && sharing == nil && isPublic == nil {
		return Patch{}, fmt.Errorf("at least one field must be provided")
	}
	return Patch{
		name:        name,
		description: description,
		entityTypes: entityTypes,
		criteria:    criteria,
		sharing:     sharing,
		isPublic:    isPublic,
	}, nil
}

// Apply merges the patch into the filter and bumps updatedAt. Patched
// fields go through the same validation as New.
func (f SavedFilter) Apply(p Patch) (SavedFilter, error) {
	if p.name != nil {
		if err := validateName(*p.name); err != nil {
			return SavedFilter{}, err
		}
		f.name = *p.name
	}
	if p.description != nil {
		if err := validateDescription(*p.description); err != nil {
			return SavedFilter{}, err
		}
		f.description = *p.description
	}
	if p.entityTypes != nil {
		kinds, err := validateEntityTypes(p.entityTypes)
		if err != nil {
			return SavedFilter{}, err
		}
		f.entityTypes = kinds
	}
	if p.criteria != nil {
		f.criteria = *p.criteria
	}
	if p.sharing != nil {
		f.sharing = *p.sharing
	}
	if p.isPublic != nil {
		f.isPublic = *p.isPublic
	}
	f.updatedAt = time.Now().UnixMilli()
	return f, nil
}
