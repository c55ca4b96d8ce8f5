package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks caller errors: bad indices, non-positive speed,
	// unknown algorithm. The transport layer reports these as 4xx.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotFound is returned by repositories when nothing matches.
	ErrNotFound = errors.New("not found")
)

// ParamError describes which input was rejected and why.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidParameter, e.Field, e.Reason)
}

func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameter
}
