// Package history models the persisted search-history trail.
package history

import (
	"fmt"
	"time"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// Record is one completed search, snapshotted at creation time and never
// mutated afterwards.
type Record struct {
	id           string
	user         string
	query        string
	filters      filter.Set
	resultsCount int
	suggestions  []string
	createdAt    int64
}

// New validates and creates a Record. ResultsCount is the envelope total at
// creation time, zero included.
func New(
	id, user, query string, filters filter.Set,
	resultsCount int, suggestions []string,
) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("history record id is required")
	}
	if user == "" {
		return Record{}, domain.ErrActorRequired
	}
	if query == "" {
		return Record{}, domain.ErrEmptyQuery
	}
	if resultsCount < 0 {
		return Record{}, fmt.Errorf("results count must not be negative")
	}

	return Record{
		id:           id,
		user:         user,
		query:        query,
		filters:      filters,
		resultsCount: resultsCount,
		suggestions:  suggestions,
		createdAt:    time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(
	id, user, query string, filters filter.Set,
	resultsCount int, suggestions []string, createdAt int64,
) Record {
	return Record{
		id:           id,
		user:         user,
		query:        query,
		filters:      filters,
		resultsCount: resultsCount,
		suggestions:  suggestions,
		createdAt:    createdAt,
	}
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// User returns the id of the user who issued the search.
func (r Record) User() string { return r.user }

// Query returns the original search text.
func (r Record) Query() string { return r.query }

// Filters returns the filter set snapshot.
func (r Record) Filters() filter.Set { return r.filters }

// ResultsCount returns the envelope total snapshot.
func (r Record) ResultsCount() int { return r.resultsCount }

// Suggestions returns the derived suggestions snapshot.
func (r Record) Suggestions() []string { return r.suggestions }

// CreatedAt returns the creation timestamp (unix millis).
func (r Record) CreatedAt() int64 { return r.createdAt }
