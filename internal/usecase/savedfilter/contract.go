package savedfilter

import (
	"context"

	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
)

// Repository defines the storage contract for saved filter presets.
type Repository interface {
	Save(ctx context.Context, f domsaved.SavedFilter) error
	Get(ctx context.Context, id string) (domsaved.SavedFilter, error)
	Delete(ctx context.Context, id string) error
	ListVisible(ctx context.Context, actor domain.Actor) ([]domsaved.SavedFilter, error)
}
