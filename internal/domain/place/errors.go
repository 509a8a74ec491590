// Package place models the searchable table of named places.
package place

import (
	"errors"
	"fmt"

	"github.com/travelplanner/service-trip/internal/domain/shared"
)

var (
	// ErrLookupFailure marks a search that failed as a whole.
	ErrLookupFailure = errors.New("place lookup failed")

	// ErrPlaceNotFound is returned by FindByName when no record matches.
	ErrPlaceNotFound = errors.New("place not found")
)

// NewLookupFailure builds the displayable error for a failed search on query.
func NewLookupFailure(query string) *shared.DomainError {
	return &shared.DomainError{
		Kind:    shared.KindUnavailable,
		Message: fmt.Sprintf("You searched with the term %q so the lookup has failed", query),
		Err:     ErrLookupFailure,
	}
}

// NewPlaceNotFound wraps ErrPlaceNotFound for name.
func NewPlaceNotFound(name string) *shared.DomainError {
	return &shared.DomainError{
		Kind:    shared.KindNotFound,
		Message: fmt.Sprintf("place %q not found", name),
		Err:     ErrPlaceNotFound,
	}
}
