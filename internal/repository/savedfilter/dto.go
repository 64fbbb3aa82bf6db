package savedfilter

import (
	"encoding/json"
	"fmt"

	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
)

// filterDoc is the stored JSON shape. Sharing is flattened so scope,
// audience and the public flag sit at the top level for tag indexing.
type filterDoc struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	EntityTypes []string   `json:"entityTypes"`
	Criteria    filter.Set `json:"criteria"`
	Owner       string     `json:"owner"`
	Scope       string     `json:"scope"`
	SharedTeams []string   `json:"sharedTeams,omitempty"`
	SharedUsers []string   `json:"sharedUsers,omitempty"`
	IsPublic    bool       `json:"isPublic"`
	CreatedAt   int64      `json:"createdAt"`
	UpdatedAt   int64      `json:"updatedAt"`
}

// filterToDoc converts a domain SavedFilter to its stored shape.
func filterToDoc(f domsaved.SavedFilter) filterDoc {
	types := make([]string, len(f.EntityTypes()))
	for i, k := range f.EntityTypes() {
		types[i] = string(k)
	}
	return filterDoc{
		ID:          f.ID(),
		Name:        f.Name(),
		Description: f.Description(),
		EntityTypes: types,
		Criteria:    f.Criteria(),
		Owner:       f.Owner(),
		Scope:       string(f.Sharing().Scope()),
		SharedTeams: f.Sharing().Teams(),
		SharedUsers: f.Sharing().Users(),
		IsPublic:    f.IsPublic(),
		CreatedAt:   f.CreatedAt(),
		UpdatedAt:   f.UpdatedAt(),
	}
}

// parseGetResult hydrates from a JSON.GET $ reply, which wraps the document
// in a one-element array.
func parseGetResult(raw []byte) (domsaved.SavedFilter, error) {
	var docs []filterDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domsaved.SavedFilter{}, fmt.Errorf("unmarshal saved filter: %w", err)
	}
	if len(docs) == 0 {
		return domsaved.SavedFilter{}, domain.ErrFilterNotFound
	}
	return docToFilter(docs[0]), nil
}

// parseSearchResult hydrates from an FT.SEARCH $ field, which carries the
// document unwrapped.
func parseSearchResult(raw []byte) (domsaved.SavedFilter, error) {
	var doc filterDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domsaved.SavedFilter{}, fmt.Errorf("unmarshal saved filter: %w", err)
	}
	return docToFilter(doc), nil
}

// docToFilter converts the stored shape back to the domain aggregate.
// An unknown stored scope degrades to private.
func docToFilter(doc filterDoc) domsaved.SavedFilter {
	kinds := make([]domain.Kind, len(doc.EntityTypes))
	for i, s := range doc.EntityTypes {
		kinds[i] = domain.Kind(s)
	}

	sharing, err := domsaved.NewSharing(domsaved.Scope(doc.Scope), doc.SharedTeams, doc.SharedUsers)
	if err != nil {
		sharing, _ = domsaved.NewSharing(domsaved.ScopePrivate, doc.SharedTeams, doc.SharedUsers)
	}

	return domsaved.Reconstruct(
		doc.ID, doc.Name, doc.Description, kinds, doc.Criteria,
		doc.Owner, sharing, doc.IsPublic, doc.CreatedAt, doc.UpdatedAt,
	)
}
