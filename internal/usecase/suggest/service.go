// Package suggest completes partial queries from the actor's search history
// and the stored project names.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/match"
)

const (
	// maxPerSource caps what each source contributes before the merge.
	maxPerSource = 5
	// maxSuggestions caps the merged list.
	maxSuggestions = 8

	defaultHistoryScan = 50
	defaultProjectScan = 200
)

// Service serves typeahead suggestions.
type Service struct {
	history  HistorySource
	projects ProjectNameSource

	historyScan int
	projectScan int
}

// New creates a suggestion service with the default scan windows.
func New(hist HistorySource, projects ProjectNameSource) *Service {
	return &Service{
		history:     hist,
		projects:    projects,
		historyScan: defaultHistoryScan,
		projectScan: defaultProjectScan,
	}
}

// WithScanLimits overrides how many records each source examines per request.
func (s *Service) WithScanLimits(historyScan, projectScan int) *Service {
	if historyScan > 0 {
		s.historyScan = historyScan
	}
	if projectScan > 0 {
		s.projectScan = projectScan
	}
	return s
}

// Suggest matches the partial query case-insensitively against the actor's
// recent search texts and the stored project names, fetched concurrently.
// History matches come first in the merged list; exact duplicates collapse
// first-seen. An empty partial returns an empty list without touching the
// store.
func (s *Service) Suggest(ctx context.Context, actor domain.Actor, partial string) ([]string, error) {
	needle := match.Normalize(partial)
	if needle == "" {
		return []string{}, nil
	}

	var fromHistory, fromProjects []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.history.ListRecent(gctx, actor.ID(), s.historyScan)
		if err != nil {
			return fmt.Errorf("history suggestions: %w", err)
		}
		for _, rec := range recs {
			if len(fromHistory) == maxPerSource {
				break
			}
			if strings.Contains(match.Normalize(rec.Query()), needle) {
				fromHistory = append(fromHistory, rec.Query())
			}
		}
		return nil
	})
	g.Go(func() error {
		names, err := s.projects.ProjectNames(gctx, s.projectScan)
		if err != nil {
			return fmt.Errorf("project suggestions: %w", err)
		}
		for _, name := range names {
			if len(fromProjects) == maxPerSource {
				break
			}
			if strings.Contains(match.Normalize(name), needle) {
				fromProjects = append(fromProjects, name)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(fromHistory, fromProjects), nil
}

// merge joins the sources history-first, deduplicating exact strings and
// capping the final list.
func merge(history, projects []string) []string {
	out := make([]string, 0, maxSuggestions)
	seen := make(map[string]struct{}, maxSuggestions)
	for _, src := range [][]string{history, projects} {
		for _, s := range src {
			if len(out) == maxSuggestions {
				return out
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
