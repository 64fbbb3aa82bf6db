package domain

// Candidate is one entity document fetched for ranking. Reference
// attributes arrive expanded: where the stored document holds a parent
// entity id, the candidate holds the parent document instead, so dotted
// paths like "project.name" resolve during vector building.
type Candidate struct {
	ID  string
	Doc map[string]any
}
