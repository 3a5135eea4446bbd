package flock

import (
	"errors"
	"fmt"
)

// ErrSpeciesNotFound is matched by every error caused by an unregistered species id.
var ErrSpeciesNotFound = errors.New("species not found")

// SpeciesNotFoundError reports the id that failed to resolve.
type SpeciesNotFoundError struct {
	ID string
}

func (e *SpeciesNotFoundError) Error() string {
	return fmt.Sprintf("species %q not found", e.ID)
}

// Is lets errors.Is(err, ErrSpeciesNotFound) match.
func (e *SpeciesNotFoundError) Is(target error) bool {
	return target == ErrSpeciesNotFound
}
