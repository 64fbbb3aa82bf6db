// Package query models a validated cross-entity search request.
package query

import (
	"fmt"
	"strings"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxTextLength is the maximum allowed search text length.
	MaxTextLength = 1024
	DefaultLimit  = 5
	MaxLimit      = 50
)

// Query is a validated search request. The text is kept verbatim;
// normalization happens at scoring time so the original spelling stays
// available for suggestions and history.
type Query struct {
	text    string
	filters filter.Set
	kinds   []domain.Kind
	limit   int
}

// New validates and normalizes search parameters.
// Defaults: limit=5, clamped to 50. An empty includeKinds means all kinds;
// otherwise unknown names are dropped and envelope order is preserved.
func New(text string, filters filter.Set, includeKinds []string, limit int) (Query, error) {
	if strings.TrimSpace(text) == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("search text too long (max %d chars)", MaxTextLength)
	}
	if limit < 0 {
		return Query{}, domain.ErrBadLimit
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{
		text:    text,
		filters: filters,
		kinds:   intersectKinds(includeKinds),
		limit:   limit,
	}, nil
}

// intersectKinds resolves the requested kind names against the known set,
// keeping envelope order. Unknown names are dropped rather than rejected so
// clients built against a newer entity catalog keep working.
func intersectKinds(include []string) []domain.Kind {
	all := domain.Kinds()
	if len(include) == 0 {
		return all
	}
	requested := make(map[domain.Kind]struct{}, len(include))
	for _, name := range include {
		requested[domain.Kind(name)] = struct{}{}
	}
	kinds := make([]domain.Kind, 0, len(all))
	for _, k := range all {
		if _, ok := requested[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Text returns the original search text.
func (q *Query) Text() string { return q.text }

// Filters returns the per-entity filter set.
func (q *Query) Filters() filter.Set { return q.filters }

// Kinds returns the entity kinds to search, in envelope order.
func (q *Query) Kinds() []domain.Kind { return q.kinds }

// Limit returns the per-kind result budget.
func (q *Query) Limit() int { return q.limit }
