package search

import (
	"context"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/history"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// CandidateSource fetches filtered entity documents for ranking, with
// relational references already expanded into parent documents.
type CandidateSource interface {
	Candidates(ctx context.Context, kind domain.Kind, filters filter.Expression, limit int) ([]domain.Candidate, error)
}

// HistoryRecorder persists completed searches.
type HistoryRecorder interface {
	Append(ctx context.Context, rec history.Record) error
}
