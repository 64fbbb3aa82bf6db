package db

import "github.com/agilesafe/searchd/internal/domain/search/filter"

// ListQuery is the input for filtered, sorted index listing.
type ListQuery struct {
	IndexName    string
	Filters      filter.Expression
	SortBy       string // index field alias; empty = backend default order
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation. Total counts every
// match, not just the returned page.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search. For JSON indexes the
// whole document arrives under the "$" field unless specific return fields
// were requested.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
