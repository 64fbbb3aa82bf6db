package searchd

import (
	"context"
	"fmt"
	"time"

	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
	savedfilteruc "github.com/agilesafe/searchd/internal/usecase/savedfilter"
)

// FilterService manages saved filter presets.
type FilterService struct {
	svc *savedfilteruc.Service
}

// Create stores a new preset owned by the actor. Name and at least one
// entity type are required; everything else is optional.
func (s *FilterService) Create(
	ctx context.Context, actor Actor, name string, entityTypes []string,
	opts ...FilterOption,
) (SavedFilter, error) {
	var cfg filterConfig
	for _, o := range opts {
		o(&cfg)
	}

	act, err := toInternalActor(actor)
	if err != nil {
		return SavedFilter{}, fmt.Errorf("create filter: %w", err)
	}
	sharing, err := toInternalSharing(cfg.sharing)
	if err != nil {
		return SavedFilter{}, fmt.Errorf("create filter: %w", err)
	}

	f, err := s.svc.Create(
		ctx, act, name, cfg.description, entityTypes,
		toInternalFilters(cfg.criteria), sharing, cfg.isPublic,
	)
	if err != nil {
		return SavedFilter{}, fmt.Errorf("create filter: %w", err)
	}
	return fromSavedFilter(f), nil
}

// List returns the presets visible to the actor, most recently updated
// first.
func (s *FilterService) List(ctx context.Context, actor Actor) ([]SavedFilter, error) {
	act, err := toInternalActor(actor)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}

	found, err := s.svc.List(ctx, act)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}

	out := make([]SavedFilter, len(found))
	for i, f := range found {
		out[i] = fromSavedFilter(f)
	}
	return out, nil
}

// Update applies a partial update to a preset. Nil patch fields stay
// unchanged.
func (s *FilterService) Update(
	ctx context.Context, actor Actor, id string, patch FilterPatch,
) (SavedFilter, error) {
	act, err := toInternalActor(actor)
	if err != nil {
		return SavedFilter{}, fmt.Errorf("update filter: %w", err)
	}
	p, err := toInternalPatch(patch)
	if err != nil {
		return SavedFilter{}, fmt.Errorf("update filter: %w", err)
	}

	f, err := s.svc.Update(ctx, act, id, p)
	if err != nil {
		return SavedFilter{}, fmt.Errorf("update filter: %w", err)
	}
	return fromSavedFilter(f), nil
}

// Delete removes a preset.
func (s *FilterService) Delete(ctx context.Context, actor Actor, id string) error {
	act, err := toInternalActor(actor)
	if err != nil {
		return fmt.Errorf("delete filter: %w", err)
	}
	if err := s.svc.Delete(ctx, act, id); err != nil {
		return fmt.Errorf("delete filter: %w", err)
	}
	return nil
}

func toInternalSharing(sh Sharing) (domsaved.Sharing, error) {
	return domsaved.NewSharing(domsaved.Scope(sh.Scope), sh.Teams, sh.Users)
}

func fromSharing(sh domsaved.Sharing) Sharing {
	return Sharing{
		Scope: string(sh.Scope()),
		Teams: sh.Teams(),
		Users: sh.Users(),
	}
}

func fromSavedFilter(f domsaved.SavedFilter) SavedFilter {
	kinds := f.EntityTypes()
	types := make([]string, len(kinds))
	for i, k := range kinds {
		types[i] = string(k)
	}
	return SavedFilter{
		ID:          f.ID(),
		Name:        f.Name(),
		Description: f.Description(),
		EntityTypes: types,
		Criteria:    fromInternalFilters(f.Criteria()),
		Owner:       f.Owner(),
		Sharing:     fromSharing(f.Sharing()),
		IsPublic:    f.IsPublic(),
		CreatedAt:   time.UnixMilli(f.CreatedAt()).UTC(),
		UpdatedAt:   time.UnixMilli(f.UpdatedAt()).UTC(),
	}
}

func toInternalPatch(p FilterPatch) (domsaved.Patch, error) {
	var criteria *filter.Set
	if p.Criteria != nil {
		set := toInternalFilters(*p.Criteria)
		criteria = &set
	}
	var sharing *domsaved.Sharing
	if p.Sharing != nil {
		sh, err := toInternalSharing(*p.Sharing)
		if err != nil {
			return domsaved.Patch{}, err
		}
		sharing = &sh
	}
	return domsaved.NewPatch(p.Name, p.Description, p.EntityTypes, criteria, sharing, p.IsPublic)
}
