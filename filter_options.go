package searchd

// FilterOption configures saved filter creation.
type FilterOption func(*filterConfig)

type filterConfig struct {
	description string
	criteria    Filters
	sharing     Sharing
	isPublic    bool
}

// WithDescription sets the preset's display description.
func WithDescription(d string) FilterOption {
	return func(c *filterConfig) {
		c.description = d
	}
}

// WithCriteria sets the per-entity filters the preset stores.
func WithCriteria(f Filters) FilterOption {
	return func(c *filterConfig) {
		c.criteria = f
	}
}

// WithSharing sets who sees the preset beyond its owner.
// The default is private.
func WithSharing(sh Sharing) FilterOption {
	return func(c *filterConfig) {
		c.sharing = sh
	}
}

// AsPublic makes the preset visible and modifiable by every user.
func AsPublic() FilterOption {
	return func(c *filterConfig) {
		c.isPublic = true
	}
}
