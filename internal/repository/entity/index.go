package entity

import (
	"github.com/agilesafe/searchd/internal/db"
	"github.com/agilesafe/searchd/internal/domain"
)

// indexDefinitions returns one FT index per entity kind, covering exactly
// the attributes the per-entity filters address. isActive indexes the JSON
// boolean as the tags "true"/"false".
func indexDefinitions() []*db.IndexDefinition {
	return []*db.IndexDefinition{
		db.NewIndex(indexName(domain.KindProject)).OnJSON().
			Prefix(kindPrefix(domain.KindProject)).
			TagAs("$.team", "team").
			TagAs("$.status", "status").
			MustBuild(),
		db.NewIndex(indexName(domain.KindSprint)).OnJSON().
			Prefix(kindPrefix(domain.KindSprint)).
			TagAs("$.project", "project").
			TagAs("$.status", "status").
			MustBuild(),
		db.NewIndex(indexName(domain.KindStory)).OnJSON().
			Prefix(kindPrefix(domain.KindStory)).
			TagAs("$.project", "project").
			TagAs("$.status", "status").
			TagAs("$.priority", "priority").
			TagAs("$.assignee", "assignee").
			MustBuild(),
		db.NewIndex(indexName(domain.KindTask)).OnJSON().
			Prefix(kindPrefix(domain.KindTask)).
			TagAs("$.story", "story").
			TagAs("$.status", "status").
			TagAs("$.priority", "priority").
			TagAs("$.assignee", "assignee").
			MustBuild(),
		db.NewIndex(indexName(domain.KindUser)).OnJSON().
			Prefix(kindPrefix(domain.KindUser)).
			TagAs("$.role", "role").
			TagAs("$.team", "team").
			TagAs("$.isActive", "isActive").
			MustBuild(),
	}
}
