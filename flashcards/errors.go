package flashcards

import "errors"

// Error kinds returned by Service. Callers match them with errors.Is; the
// wrapped message says which user, collection or term was involved.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("database not connected")
)
