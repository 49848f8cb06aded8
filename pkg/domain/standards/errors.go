package standards

import "errors"

// Domain errors for catalog queries.
var (
	// ErrStandardNotFound indicates no record exists for the requested id.
	ErrStandardNotFound = errors.New("standard not found")

	// ErrInvalidArgument indicates a query argument outside the accepted set.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreNotLoaded indicates a query was issued before LoadAll completed.
	ErrStoreNotLoaded = errors.New("store not loaded")
)

// NotFoundError carries the id that failed to resolve.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "standard '" + e.ID + "' not found"
}

// Is allows errors.Is to work with NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrStandardNotFound
}
