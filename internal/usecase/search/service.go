// Package search aggregates per-kind candidate pipelines into one ranked
// cross-entity envelope.
package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/history"
	"github.com/agilesafe/searchd/internal/domain/search/query"
	"github.com/agilesafe/searchd/internal/domain/search/result"
	"github.com/agilesafe/searchd/internal/metrics"
)

// defaultMinScore is the canonical relevance floor.
const defaultMinScore = 0.4

// Service runs cross-entity searches: one pipeline per requested kind, a
// shared ranker, one envelope, one history record.
type Service struct {
	entities CandidateSource
	history  HistoryRecorder
	minScore float64
}

// New creates a search service with the canonical relevance floor.
func New(entities CandidateSource, hist HistoryRecorder) *Service {
	return &Service{entities: entities, history: hist, minScore: defaultMinScore}
}

// WithMinScore overrides the relevance floor.
func (s *Service) WithMinScore(minScore float64) *Service {
	s.minScore = minScore
	return s
}

// Search fans out one pipeline per active kind and composes the grouped
// envelope once all of them finish. Any pipeline error fails the whole
// request; the group context cancels the siblings. On success exactly one
// history record is appended, zero-hit searches included; a history write
// failure fails the search with it.
func (s *Service) Search(ctx context.Context, actor domain.Actor, q *query.Query) (result.Envelope, error) {
	kinds := q.Kinds()
	slots := make([][]result.Item, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind // per-iteration copies; required while go.mod is below go1.22
		g.Go(func() error {
			cands, err := s.entities.Candidates(gctx, kind, strategies[kind].filters(q.Filters()), q.Limit())
			if err != nil {
				return fmt.Errorf("%s pipeline: %w", kind, err)
			}
			metrics.SearchCandidatesScoredTotal.WithLabelValues(string(kind)).Add(float64(len(cands)))
			slots[i] = rank(kind, cands, q.Text(), s.minScore)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return result.Envelope{}, err
	}

	groups := make(map[domain.Kind][]result.Item, len(kinds))
	for i, kind := range kinds {
		groups[kind] = slots[i]
	}
	env := result.NewEnvelope(q.Text(), groups)

	if err := s.recordHistory(ctx, actor, q, &env); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return result.Envelope{}, err
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	return env, nil
}

// recordHistory snapshots the completed search for the actor's trail.
func (s *Service) recordHistory(
	ctx context.Context, actor domain.Actor, q *query.Query, env *result.Envelope,
) error {
	rec, err := history.New(
		uuid.NewString(), actor.ID(), q.Text(), q.Filters(),
		env.Total(), env.Suggestions(),
	)
	if err != nil {
		return fmt.Errorf("build history record: %w", err)
	}

	if err := s.history.Append(ctx, rec); err != nil {
		metrics.SearchHistoryWriteFailuresTotal.Inc()
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}
