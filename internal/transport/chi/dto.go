package chi

import (
	"fmt"
	"time"

	"github.com/agilesafe/searchd/internal/domain"
	domsaved "github.com/agilesafe/searchd/internal/domain/savedfilter"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
	"github.com/agilesafe/searchd/internal/domain/search/result"
)

type searchRequest struct {
	Text         string     `json:"text"`
	Filters      filter.Set `json:"filters"`
	IncludeTypes []string   `json:"includeTypes"`
	Limit        int        `json:"limit"`
}

// searchResponse groups hits under one plural key per entity kind. The
// slices are always present, empty rather than null, so clients can index
// them without nil checks.
type searchResponse struct {
	Projects    []map[string]any `json:"projects"`
	Sprints     []map[string]any `json:"sprints"`
	Stories     []map[string]any `json:"stories"`
	Tasks       []map[string]any `json:"tasks"`
	Users       []map[string]any `json:"users"`
	Total       int              `json:"total"`
	Suggestions []string         `json:"suggestions"`
}

func envelopeToDTO(env *result.Envelope) searchResponse {
	return searchResponse{
		Projects:    itemsToDTO(env.Items(domain.KindProject)),
		Sprints:     itemsToDTO(env.Items(domain.KindSprint)),
		Stories:     itemsToDTO(env.Items(domain.KindStory)),
		Tasks:       itemsToDTO(env.Items(domain.KindTask)),
		Users:       itemsToDTO(env.Items(domain.KindUser)),
		Total:       env.Total(),
		Suggestions: env.Suggestions(),
	}
}

func itemsToDTO(items []result.Item) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, itemToDTO(&items[i]))
	}
	return out
}

// itemToDTO spreads the kind-specific aux fields next to the common ones,
// yielding one flat object per hit.
func itemToDTO(it *result.Item) map[string]any {
	m := make(map[string]any, len(it.Aux())+7)
	for k, v := range it.Aux() {
		m[k] = v
	}
	m["id"] = it.ID()
	m["type"] = string(it.Kind())
	m["title"] = it.Title()
	m["description"] = it.Description()
	m["icon"] = it.Icon()
	m["url"] = it.URL()
	m["matchScore"] = it.Score()
	return m
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type sharingDTO struct {
	Scope string   `json:"scope,omitempty"`
	Teams []string `json:"teams,omitempty"`
	Users []string `json:"users,omitempty"`
}

type savedFilterRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	EntityTypes []string   `json:"entityTypes"`
	Criteria    filter.Set `json:"criteria"`
	Sharing     sharingDTO `json:"sharing"`
	IsPublic    bool       `json:"isPublic"`
}

// savedFilterPatchRequest distinguishes absent fields from zero values;
// only non-nil fields are applied.
type savedFilterPatchRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	EntityTypes []string    `json:"entityTypes"`
	Criteria    *filter.Set `json:"criteria"`
	Sharing     *sharingDTO `json:"sharing"`
	IsPublic    *bool       `json:"isPublic"`
}

type savedFilterResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	EntityTypes []string   `json:"entityTypes"`
	Criteria    filter.Set `json:"criteria"`
	Owner       string     `json:"owner"`
	Sharing     sharingDTO `json:"sharing"`
	IsPublic    bool       `json:"isPublic"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type savedFilterListResponse struct {
	Items []savedFilterResponse `json:"items"`
	Total int                   `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

func sharingFromDTO(d sharingDTO) (domsaved.Sharing, error) {
	sharing, err := domsaved.NewSharing(domsaved.Scope(d.Scope), d.Teams, d.Users)
	if err != nil {
		return domsaved.Sharing{}, fmt.Errorf("parse sharing: %w", err)
	}
	return sharing, nil
}

func savedFilterToDTO(f *domsaved.SavedFilter) savedFilterResponse {
	types := make([]string, len(f.EntityTypes()))
	for i, k := range f.EntityTypes() {
		types[i] = string(k)
	}
	return savedFilterResponse{
		ID:          f.ID(),
		Name:        f.Name(),
		Description: f.Description(),
		EntityTypes: types,
		Criteria:    f.Criteria(),
		Owner:       f.Owner(),
		Sharing: sharingDTO{
			Scope: string(f.Sharing().Scope()),
			Teams: f.Sharing().Teams(),
			Users: f.Sharing().Users(),
		},
		IsPublic:  f.IsPublic(),
		CreatedAt: time.UnixMilli(f.CreatedAt()).UTC(),
		UpdatedAt: time.UnixMilli(f.UpdatedAt()).UTC(),
	}
}

func patchFromDTO(req savedFilterPatchRequest) (domsaved.Patch, error) {
	var sharing *domsaved.Sharing
	if req.Sharing != nil {
		s, err := sharingFromDTO(*req.Sharing)
		if err != nil {
			return domsaved.Patch{}, err
		}
		sharing = &s
	}

	p, err := domsaved.NewPatch(
		req.Name, req.Description, req.EntityTypes,
		req.Criteria, sharing, req.IsPublic,
	)
	if err != nil {
		return domsaved.Patch{}, fmt.Errorf("build patch: %w", err)
	}
	return p, nil
}
