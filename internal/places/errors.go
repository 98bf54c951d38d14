package places

import (
	"errors"
	"fmt"
)

var (
	ErrLanguageInvalid = errors.New("places: original language must be one of the supported codes")
	ErrNameRequired    = errors.New("places: name is required in the original language")
	ErrPlaceIDRequired = errors.New("places: place id required")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// PersistenceError wraps a failed store operation. The record is guaranteed to
// remain in its pre-operation state when this error is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return "places: persistence failure"
	}
	return fmt.Sprintf("places: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
