package search

import (
	"sort"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/match"
	"github.com/agilesafe/searchd/internal/domain/search/result"
	"github.com/agilesafe/searchd/internal/domain/search/vector"
)

// rank scores each candidate's match vector against the query text, drops
// scores below the floor and shapes the survivors, sorted by score
// descending. The sort is stable: equal scores keep fetch order.
func rank(kind domain.Kind, cands []domain.Candidate, queryText string, minScore float64) []result.Item {
	strat := strategies[kind]

	items := make([]result.Item, 0, len(cands))
	for _, c := range cands {
		score := match.Score(vector.Build(c.Doc, strat.vectorPaths), queryText)
		if score < minScore {
			continue
		}
		items = append(items, strat.shape(c.ID, c.Doc, score))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score() > items[j].Score()
	})

	return items
}
