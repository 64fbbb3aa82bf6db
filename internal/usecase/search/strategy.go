package search

import (
	"strings"

	"github.com/agilesafe/searchd/internal/domain"
	"github.com/agilesafe/searchd/internal/domain/search/filter"
	"github.com/agilesafe/searchd/internal/domain/search/result"
)

// strategy holds the per-kind pipeline pieces: the structured filter that
// narrows the fetch, the document fields that feed the match vector and the
// shaper that turns a surviving candidate into a display item.
type strategy struct {
	filters     func(filter.Set) filter.Expression
	vectorPaths []string
	shape       func(id string, doc map[string]any, score float64) result.Item
}

// strategies maps each entity kind to its pipeline. Vector path order is
// fixed, most identifying field first; reference attributes are dotted paths
// into the expanded parent document.
var strategies = map[domain.Kind]strategy{
	domain.KindProject: {
		filters:     func(s filter.Set) filter.Expression { return s.Project.Expression() },
		vectorPaths: []string{"name", "description", "key"},
		shape: func(id string, doc map[string]any, score float64) result.Item {
			return result.NewItem(
				id, domain.KindProject,
				docString(doc, "name"), docString(doc, "description"),
				map[string]string{
					"key":    docString(doc, "key"),
					"status": docString(doc, "status"),
				},
				"folder", "/projects/"+id, score,
			)
		},
	},
	domain.KindSprint: {
		filters:     func(s filter.Set) filter.Expression { return s.Sprint.Expression() },
		vectorPaths: []string{"name", "goal", "project.name"},
		shape: func(id string, doc map[string]any, score float64) result.Item {
			return result.NewItem(
				id, domain.KindSprint,
				docString(doc, "name"), docString(doc, "goal"),
				map[string]string{
					"status":      docString(doc, "status"),
					"projectName": docString(doc, "project.name"),
				},
				"flag", "/sprints/"+id, score,
			)
		},
	},
	domain.KindStory: {
		filters:     func(s filter.Set) filter.Expression { return s.Story.Expression() },
		vectorPaths: []string{"title", "description", "project.name", "sprint.name"},
		shape: func(id string, doc map[string]any, score float64) result.Item {
			return result.NewItem(
				id, domain.KindStory,
				docString(doc, "title"), docString(doc, "description"),
				map[string]string{
					"status":      docString(doc, "status"),
					"priority":    docString(doc, "priority"),
					"projectName": docString(doc, "project.name"),
					"sprintName":  docString(doc, "sprint.name"),
				},
				"book", "/stories/"+id, score,
			)
		},
	},
	domain.KindTask: {
		filters:     func(s filter.Set) filter.Expression { return s.Task.Expression() },
		vectorPaths: []string{"title", "description", "story.title"},
		shape: func(id string, doc map[string]any, score float64) result.Item {
			return result.NewItem(
				id, domain.KindTask,
				docString(doc, "title"), docString(doc, "description"),
				map[string]string{
					"status":     docString(doc, "status"),
					"priority":   docString(doc, "priority"),
					"storyTitle": docString(doc, "story.title"),
				},
				"check-square", "/tasks/"+id, score,
			)
		},
	},
	domain.KindUser: {
		filters:     func(s filter.Set) filter.Expression { return s.User.Expression() },
		vectorPaths: []string{"name", "email", "role", "skills"},
		shape: func(id string, doc map[string]any, score float64) result.Item {
			return result.NewItem(
				id, domain.KindUser,
				docString(doc, "name"), docString(doc, "email"),
				map[string]string{
					"role": docString(doc, "role"),
					"team": docString(doc, "team"),
				},
				"user", "/users/"+id, score,
			)
		},
	},
}

// docString resolves a dotted path to its string value, verbatim. Display
// fields keep the stored casing; only the match vector is normalized.
func docString(doc map[string]any, path string) string {
	var cur any = doc
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[seg]
		if !ok {
			return ""
		}
	}
	s, _ := cur.(string)
	return s
}
