package entity

import (
	"context"
	"fmt"

	"github.com/agilesafe/searchd/internal/domain"
)

// expansion names one reference attribute and the kind it points at.
type expansion struct {
	attr string
	kind domain.Kind
}

// expansions lists the reference attributes resolved after fetch. The
// stored attribute holds a parent entity id; expansion swaps it for the
// parent document.
var expansions = map[domain.Kind][]expansion{
	domain.KindSprint: {{attr: "project", kind: domain.KindProject}},
	domain.KindStory: {
		{attr: "project", kind: domain.KindProject},
		{attr: "sprint", kind: domain.KindSprint},
	},
	domain.KindTask: {{attr: "story", kind: domain.KindStory}},
}

func (r *Repo) expandReferences(ctx context.Context, kind domain.Kind, cands []domain.Candidate) error {
	for _, exp := range expansions[kind] {
		if err := r.expandOne(ctx, exp, cands); err != nil {
			return err
		}
	}
	return nil
}

// expandOne resolves one reference attribute across all candidates with a
// single pipelined fetch. Dangling references keep the raw id.
func (r *Repo) expandOne(ctx context.Context, exp expansion, cands []domain.Candidate) error {
	ids := make([]string, 0, len(cands))
	seen := make(map[string]bool, len(cands))
	for _, c := range cands {
		id, ok := c.Doc[exp.attr].(string)
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(exp.kind, id)
	}
	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return fmt.Errorf("expand %s references: %w", exp.attr, err)
	}

	parents := make(map[string]map[string]any, len(ids))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		if doc, ok := decodeDoc(string(raw)); ok {
			parents[ids[i]] = doc
		}
	}

	for _, c := range cands {
		id, ok := c.Doc[exp.attr].(string)
		if !ok {
			continue
		}
		if parent, ok := parents[id]; ok {
			c.Doc[exp.attr] = parent
		}
	}
	return nil
}
