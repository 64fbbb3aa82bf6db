// Package result models ranked search hits and the grouped response envelope.
package result

import (
	"github.com/agilesafe/searchd/internal/domain"
)

// maxTitleSuggestions caps how many result titles feed the envelope
// suggestions before the query text is prepended.
const maxTitleSuggestions = 5

// Item is a single ranked hit, carrying the presentation fields the
// entity's shaper extracted from the stored document.
type Item struct {
	id          string
	kind        domain.Kind
	title       string
	description string
	aux         map[string]string
	icon        string
	url         string
	score       float64
}

// NewItem creates a ranked hit.
func NewItem(
	id string, kind domain.Kind, title, description string,
	aux map[string]string, icon, url string, score float64,
) Item {
	return Item{
		id: id, kind: kind, title: title, description: description,
		aux: aux, icon: icon, url: url, score: score,
	}
}

// ID returns the entity identifier.
func (i *Item) ID() string { return i.id }

// Kind returns the entity kind.
func (i *Item) Kind() domain.Kind { return i.kind }

// Title returns the display title.
func (i *Item) Title() string { return i.title }

// Description returns the display description.
func (i *Item) Description() string { return i.description }

// Aux returns the kind-specific extra fields.
func (i *Item) Aux() map[string]string { return i.aux }

// Icon returns the display icon name.
func (i *Item) Icon() string { return i.icon }

// URL returns the entity's canonical path.
func (i *Item) URL() string { return i.url }

// Score returns the match score in [0,1].
func (i *Item) Score() float64 { return i.score }

// Envelope is the composed response: one ranked list per kind, the overall
// hit count, and derived suggestions.
type Envelope struct {
	groups      map[domain.Kind][]Item
	total       int
	suggestions []string
}

// NewEnvelope composes grouped results and derives suggestions from the
// ranked titles plus the original query text.
func NewEnvelope(queryText string, groups map[domain.Kind][]Item) Envelope {
	total := 0
	for _, items := range groups {
		total += len(items)
	}
	return Envelope{
		groups:      groups,
		total:       total,
		suggestions: deriveSuggestions(queryText, groups),
	}
}

// Items returns the ranked hits for one kind.
func (e *Envelope) Items(kind domain.Kind) []Item { return e.groups[kind] }

// Total returns the sum of hits across all kinds.
func (e *Envelope) Total() int { return e.total }

// Suggestions returns the derived follow-up queries.
func (e *Envelope) Suggestions() []string { return e.suggestions }

// deriveSuggestions prepends the original query text to the collected
// result titles and deduplicates preserving first-seen order. The title
// cap applies before the prepend, so a title equal to the query collapses
// instead of making room for another.
func deriveSuggestions(queryText string, groups map[domain.Kind][]Item) []string {
	titles := collectTitles(groups)

	suggestions := make([]string, 0, len(titles)+1)
	seen := make(map[string]struct{}, len(titles)+1)
	for _, s := range append([]string{queryText}, titles...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

// collectTitles gathers distinct result titles in envelope order, first
// occurrences only, up to the cap.
func collectTitles(groups map[domain.Kind][]Item) []string {
	titles := make([]string, 0, maxTitleSuggestions)
	seen := make(map[string]struct{}, maxTitleSuggestions)
	for _, kind := range domain.Kinds() {
		for i := range groups[kind] {
			if len(titles) == maxTitleSuggestions {
				return titles
			}
			title := groups[kind][i].Title()
			if title == "" {
				continue
			}
			if _, ok := seen[title]; ok {
				continue
			}
			seen[title] = struct{}{}
			titles = append(titles, title)
		}
	}
	return titles
}
