package suggest

import (
	"context"

	"github.com/agilesafe/searchd/internal/domain/history"
)

// HistorySource lists an actor's recent searches, newest first.
type HistorySource interface {
	ListRecent(ctx context.Context, user string, limit int) ([]history.Record, error)
}

// ProjectNameSource lists stored project names.
type ProjectNameSource interface {
	ProjectNames(ctx context.Context, limit int) ([]string, error)
}
