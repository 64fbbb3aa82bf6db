// Package savedfilter manages shared filter presets and the access rules
// around them.
package savedfilter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// Service handles saved filter CRUD.
type Service struct {
	repo Repository
}

// New creates a saved filter service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new preset owned by the actor.
func (s *Service) Create(
	ctx context.Context, actor domain.Actor,
	name, description string, entityTypes []string,
	criteria filter.Set, sharing domsaved.Sharing, isPublic bool,
) (domsaved.SavedFilter, error) {
	f, err := domsaved.New(
		uuid.NewString(), name, description, entityTypes,
		criteria, actor.ID(), sharing, isPublic,
	)
	if err != nil {
		return domsaved.SavedFilter{}, fmt.Errorf("validate saved filter: %w", err)
	}

	if err := s.repo.Save(ctx, f); err != nil {
		return domsaved.SavedFilter{}, fmt.Errorf("create saved filter: %w", err)
	}
	return f, nil
}

// List returns the presets visible to the actor, most recently updated
// first. The store prefilter is broad; the aggregate's VisibleTo is the
// authority and is re-checked here.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domsaved.SavedFilter, error) {
	candidates, err := s.repo.ListVisible(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("list saved filters: %w", err)
	}

	visible := make([]domsaved.SavedFilter, 0, len(candidates))
	for _, f := range candidates {
		if f.VisibleTo(actor) {
			visible = append(visible, f)
		}
	}
	return visible, nil
}

// Update applies a patch to an existing preset. A missing id reports
// not-found before any access check; a visible but unmodifiable preset
// reports forbidden. Public presets are modifiable by any requester.
func (s *Service) Update(
	ctx context.Context, actor domain.Actor, id string, patch domsaved.Patch,
) (domsaved.SavedFilter, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domsaved.SavedFilter{}, fmt.Errorf("get saved filter %s: %w", id, err)
	}
	if !current.CanModify(actor) {
		return domsaved.SavedFilter{}, fmt.Errorf("update saved filter %s: %w", id, domain.ErrFilterForbidden)
	}

	updated, err := current.Apply(patch)
	if err != nil {
		return domsaved.SavedFilter{}, fmt.Errorf("apply patch to saved filter %s: %w", id, err)
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return domsaved.SavedFilter{}, fmt.Errorf("save saved filter %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a preset under the same not-found-then-forbidden order and
// the same permissive public rule as Update.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get saved filter %s: %w", id, err)
	}
	if !current.CanModify(actor) {
		return fmt.Errorf("delete saved filter %s: %w", id, domain.ErrFilterForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete saved filter %s: %w", id, err)
	}
	return nil
}
