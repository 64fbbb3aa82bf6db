package domain

// Kind identifies one searchable entity collection.
type Kind string

// Entity kind constants, in envelope order.
const (
	KindProject Kind = "project"
	KindSprint  Kind = "sprint"
	KindStory   Kind = "story"
	KindTask    Kind = "task"
	KindUser    Kind = "user"
)

// Kinds returns all entity kinds in the fixed envelope order.
func Kinds() []Kind {
	return []Kind{KindProject, KindSprint, KindStory, KindTask, KindUser}
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case KindProject, KindSprint, KindStory, KindTask, KindUser:
		return true
	}
	return false
}
