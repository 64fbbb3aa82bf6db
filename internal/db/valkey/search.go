package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// SearchList evaluates a list query client side: keys under the index prefix
// are scanned, hydrated, filtered and sorted in process. Valkey-search cannot
// serve tag-only FT.SEARCH queries, so filtering is not pushed down.
func (s *Store) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	def, ok := s.lookupIndex(q.IndexName)
	if !ok {
		return nil, db.ErrIndexNotFound
	}

	docs, err := s.loadDocuments(ctx, def)
	if err != nil {
		return nil, err
	}

	matched := make([]document, 0, len(docs))
	for _, doc := range docs {
		if evalExpression(q.Filters, doc.attrs) {
			matched = append(matched, doc)
		}
	}

	if q.SortBy != "" {
		sortDocuments(matched, q.SortBy, q.SortDesc)
	}

	total := len(matched)
	if q.Offset >= total {
		return &db.SearchResult{Total: total}, nil
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	page := matched[q.Offset:end]

	entries := make([]db.SearchEntry, 0, len(page))
	for _, doc := range page {
		entries = append(entries, db.SearchEntry{
			Key:    doc.key,
			Fields: doc.resultFields(q.ReturnFields),
		})
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

// SearchCount counts matching documents client side.
func (s *Store) SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error) {
	if index == "" {
		return 0, fmt.Errorf("index name is required")
	}

	def, ok := s.lookupIndex(index)
	if !ok {
		return 0, db.ErrIndexNotFound
	}

	docs, err := s.loadDocuments(ctx, def)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, doc := range docs {
		if evalExpression(filters, doc.attrs) {
			count++
		}
	}
	return count, nil
}

// document is one scanned key hydrated for client-side evaluation.
type document struct {
	key   string
	raw   string         // whole JSON doc, empty for hash storage
	attrs map[string]any // attribute values for filtering and sorting
}

// resultFields shapes the entry fields: whole JSON documents arrive under
// "$" and hash documents as their field map, unless specific fields were
// requested.
func (d document) resultFields(requested []string) map[string]string {
	if len(requested) == 0 {
		if d.raw != "" {
			return map[string]string{"$": d.raw}
		}
		out := make(map[string]string, len(d.attrs))
		for k, v := range d.attrs {
			out[k] = attrString(v)
		}
		return out
	}

	out := make(map[string]string, len(requested))
	for _, name := range requested {
		if v, ok := d.attrs[name]; ok {
			out[name] = attrString(v)
		}
	}
	return out
}

func (s *Store) loadDocuments(ctx context.Context, def *db.IndexDefinition) ([]document, error) {
	keys, err := s.Scan(ctx, def.Prefixes[0]+"*")
	if err != nil {
		return nil, fmt.Errorf("scan for search: %w", err)
	}
	sort.Strings(keys) // deterministic base order

	storage := def.StorageType
	if storage == "" {
		storage = db.StorageHash
	}
	if storage == db.StorageHash {
		return s.loadHashDocuments(ctx, keys)
	}
	return s.loadJSONDocuments(ctx, keys)
}

func (s *Store) loadJSONDocuments(ctx context.Context, keys []string) ([]document, error) {
	raws, err := s.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, err
	}

	docs := make([]document, 0, len(keys))
	for i, raw := range raws {
		if raw == nil {
			continue // deleted between SCAN and GET
		}
		var attrs map[string]any
		if err := json.Unmarshal(raw, &attrs); err != nil {
			continue
		}
		docs = append(docs, document{key: keys[i], raw: string(raw), attrs: attrs})
	}
	return docs, nil
}

func (s *Store) loadHashDocuments(ctx context.Context, keys []string) ([]document, error) {
	fields, err := s.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, err
	}

	docs := make([]document, 0, len(keys))
	for i, m := range fields {
		if len(m) == 0 {
			continue // deleted between SCAN and GET
		}
		attrs := make(map[string]any, len(m))
		for k, v := range m {
			attrs[k] = v
		}
		docs = append(docs, document{key: keys[i], attrs: attrs})
	}
	return docs, nil
}

// --- Filter evaluation ---

// evalExpression applies must (all hold) and should (at least one holds)
// semantics over one document's attributes.
func evalExpression(expr filter.Expression, attrs map[string]any) bool {
	if expr.IsEmpty() {
		return true
	}

	for _, cond := range expr.Must() {
		if !condMatches(cond, attrs) {
			return false
		}
	}

	should := expr.Should()
	if len(should) == 0 {
		return true
	}
	for _, cond := range should {
		if condMatches(cond, attrs) {
			return true
		}
	}
	return false
}

// condMatches checks an attribute against the allowed set. Array attributes
// match when any element is allowed.
func condMatches(cond filter.Condition, attrs map[string]any) bool {
	v, ok := attrs[cond.Key()]
	if !ok {
		return false
	}
	for _, s := range attrStrings(v) {
		if cond.Matches(s) {
			return true
		}
	}
	return false
}

func attrStrings(v any) []string {
	switch x := v.(type) {
	case string:
		return []string{x}
	case bool:
		return []string{strconv.FormatBool(x)}
	case float64:
		return []string{strconv.FormatFloat(x, 'f', -1, 64)}
	case []any:
		out := make([]string, 0, len(x))
		for _, el := range x {
			out = append(out, attrStrings(el)...)
		}
		return out
	case []string:
		return x
	default:
		return nil
	}
}

func attrString(v any) string {
	vals := attrStrings(v)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// --- Sorting ---

// sortDocuments orders matched documents by one attribute: numeric when both
// sides parse as numbers, lexicographic otherwise. The sort is stable so the
// scanned key order breaks ties.
func sortDocuments(docs []document, field string, desc bool) {
	sort.SliceStable(docs, func(i, j int) bool {
		a := docs[i].attrs[field]
		b := docs[j].attrs[field]
		if desc {
			return lessAttr(b, a)
		}
		return lessAttr(a, b)
	})
}

func lessAttr(a, b any) bool {
	af, aok := attrFloat(a)
	bf, bok := attrFloat(b)
	if aok && bok {
		return af < bf
	}
	return attrString(a) < attrString(b)
}

func attrFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
