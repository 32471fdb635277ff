package jsonform

import (
	"errors"
	"reflect"
)

// ErrConfiguration is matched by every error reported because a conversion
// could not be configured. Such errors are raised before anything is
// written.
var ErrConfiguration = errors.New("form: invalid configuration")

var (
	// ErrInvalidDestination is matched by [InvalidDestinationError].
	ErrInvalidDestination = &configError{"form: destination must have an append method"}

	// ErrNoDestination is returned when no destination was supplied and no
	// default destination constructor is available.
	ErrNoDestination = &configError{"form: no default destination available, a destination must be supplied"}
)

type configError struct {
	msg string
}

func (e *configError) Error() string { return e.msg }

func (e *configError) Is(target error) bool { return target == ErrConfiguration }

// InvalidDestinationError describes a destination passed to
// [WithDestination] that cannot be appended to. Destinations must implement
// [Destination] or be a non-nil [url.Values] or [*multipart.Writer].
type InvalidDestinationError struct {
	Type reflect.Type
}

func (e *InvalidDestinationError) Error() string {
	if e.Type == nil {
		return ErrInvalidDestination.Error()
	}
	return "form: destination " + e.Type.String() + " is nil or has no append method"
}

func (e *InvalidDestinationError) Unwrap() error { return ErrInvalidDestination }

// InvalidValueError describes a top-level value that cannot be flattened.
// Only keyed mappings and sequences have fields to name the entries after.
type InvalidValueError struct {
	Type reflect.Type
	Kind Kind
}

func (e *InvalidValueError) Error() string {
	return "form: top-level value must be an object or array, got " + e.Kind.String() + " " + e.Type.String()
}
