package searchd

import (
	"context"
	"fmt"

	"github.com/agilesafe/searchd/internal/domain"
	entityrepo "github.com/agilesafe/searchd/internal/repository/entity"
)

// EntityService writes searchable entity documents. The platform backend
// normally owns these collections; this service covers seeding, sync jobs
// and tests.
type EntityService struct {
	repo *entityrepo.Repo
}

// Upsert creates or updates one entity document of the given kind
// (project, sprint, story, task, user). Returns true when the document
// was created rather than replaced.
func (s *EntityService) Upsert(
	ctx context.Context, kind, id string, doc map[string]any,
) (bool, error) {
	created, err := s.repo.Upsert(ctx, domain.Kind(kind), id, doc)
	if err != nil {
		return false, fmt.Errorf("upsert %s %s: %w", kind, id, err)
	}
	return created, nil
}

// UpsertBatch writes many entity documents in one pipelined round-trip.
// Suited to initial seeding and periodic sync jobs.
func (s *EntityService) UpsertBatch(ctx context.Context, docs []Document) error {
	if err := s.repo.UpsertMulti(ctx, toInternalDocs(docs)); err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}

// Count reports how many documents of one kind are stored.
func (s *EntityService) Count(ctx context.Context, kind string) (int, error) {
	n, err := s.repo.Count(ctx, domain.Kind(kind))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

func toInternalDocs(docs []Document) []entityrepo.Doc {
	out := make([]entityrepo.Doc, len(docs))
	for i, d := range docs {
		out[i] = entityrepo.Doc{Kind: domain.Kind(d.Type), ID: d.ID, Body: d.Fields}
	}
	return out
}
