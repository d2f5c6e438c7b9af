package types

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTheatre = errors.New("types: unknown theatre")
	ErrProjectionInit = errors.New("types: projection init failed")
	ErrOutOfDomain    = errors.New("types: point outside projection domain")
)

// UnknownTheatreError reports a theatre id missing from the registry.
type UnknownTheatreError struct {
	Theatre string
}

func (e *UnknownTheatreError) Error() string {
	return fmt.Sprintf("transverse mercator not known for %q", e.Theatre)
}

func (e *UnknownTheatreError) Unwrap() error {
	return ErrUnknownTheatre
}

// ProjectionError wraps an engine failure with the definition that produced it.
type ProjectionError struct {
	Definition string
	Err        error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projection %q: %v", e.Definition, e.Err)
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}
