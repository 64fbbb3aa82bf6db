package valkey

import (
	"context"
	"fmt"

	"github.com/agilesafe/searchd/internal/db"
)

// CreateIndex registers an index definition in process. Valkey-search only
// accepts FT.CREATE with a vector field, so tag and numeric schemas are held
// here and interpreted client side at query time.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	if len(def.Prefixes) == 0 {
		return &db.Error{Op: db.OpCreateIndex, Err: fmt.Errorf("at least one prefix is required")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}
	s.indexes[def.Name] = def
	return nil
}

func (s *Store) lookupIndex(name string) (*db.IndexDefinition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.indexes[name]
	return def, ok
}
