package listing

import "errors"

var (
	// ErrInvalidArgument marks caller input the listing cannot honour, such as
	// a malformed identifier in a filter field.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDependencyFailure wraps any error returned by the backing store.
	ErrDependencyFailure = errors.New("dependency failure")
)
