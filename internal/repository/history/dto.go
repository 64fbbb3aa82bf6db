package history

import (
	"encoding/json"
	"fmt"
	"strconv"

	domhist "github.com/agilesafe/searchd/internal/domain/history"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// recordToHash converts a Record to a flat map for HSET. Filters and
// suggestions are embedded as JSON strings.
func recordToHash(rec domhist.Record) (map[string]string, error) {
	filtersJSON, err := json.Marshal(rec.Filters())
	if err != nil {
		return nil, fmt.Errorf("marshal history filters: %w", err)
	}
	suggestionsJSON, err := json.Marshal(rec.Suggestions())
	if err != nil {
		return nil, fmt.Errorf("marshal history suggestions: %w", err)
	}

	return map[string]string{
		"id":           rec.ID(),
		"user":         rec.User(),
		"query":        rec.Query(),
		"filters":      string(filtersJSON),
		"resultsCount": strconv.Itoa(rec.ResultsCount()),
		"suggestions":  string(suggestionsJSON),
		"createdAt":    strconv.FormatInt(rec.CreatedAt(), 10),
	}, nil
}

// recordFromHash hydrates a Record from a stored field map.
func recordFromHash(m map[string]string) (domhist.Record, error) {
	createdAt, err := strconv.ParseInt(m["createdAt"], 10, 64)
	if err != nil {
		return domhist.Record{}, fmt.Errorf("invalid createdAt: %w", err)
	}

	resultsCount := 0
	if s := m["resultsCount"]; s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return domhist.Record{}, fmt.Errorf("invalid resultsCount: %w", err)
		}
		resultsCount = parsed
	}

	var filters filter.Set
	if s := m["filters"]; s != "" {
		if err := json.Unmarshal([]byte(s), &filters); err != nil {
			return domhist.Record{}, fmt.Errorf("unmarshal history filters: %w", err)
		}
	}

	var suggestions []string
	if s := m["suggestions"]; s != "" {
		if err := json.Unmarshal([]byte(s), &suggestions); err != nil {
			return domhist.Record{}, fmt.Errorf("unmarshal history suggestions: %w", err)
		}
	}

	return domhist.Reconstruct(
		m["id"], m["user"], m["query"], filters, resultsCount, suggestions, createdAt,
	), nil
}
