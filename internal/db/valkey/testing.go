package valkey

import (
	"github.com/redis/rueidis"

	"github.com/agilesafe/searchd/internal/db"
)

// NewStoreForTest creates a Store with the provided rueidis client (test-only).
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{
		client:  c,
		indexes: make(map[string]*db.IndexDefinition),
	}
}
