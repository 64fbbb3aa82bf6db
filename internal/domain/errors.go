package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrBadLimit signals a negative result limit.
	ErrBadLimit = errors.New("limit must not be negative")
	// ErrActorRequired signals a request without an authenticated user.
	ErrActorRequired = errors.New("requesting user is required")
	// ErrUnknownKind signals an unrecognized entity kind.
	ErrUnknownKind = errors.New("unknown entity kind")

	// ErrFilterNotFound signals a missing saved filter.
	ErrFilterNotFound = errors.New("saved filter not found")
	// ErrFilterForbidden signals an access violation on a saved filter.
	ErrFilterForbidden = errors.New("saved filter access denied")
	// ErrFilterName signals a missing or oversized saved filter name.
	ErrFilterName = errors.New("invalid saved filter name")
	// ErrFilterDescription signals an oversized saved filter description.
	ErrFilterDescription = errors.New("invalid saved filter description")
	// ErrNoEntityTypes signals a saved filter without entity types.
	ErrNoEntityTypes = errors.New("at least one entity type is required")
)
