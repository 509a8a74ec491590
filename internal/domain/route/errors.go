package route

import (
	"errors"
	"fmt"

	"github.com/travelplanner/service-trip/internal/domain/shared"
)

var (
	// ErrCityNotFound is returned when a stop name cannot be resolved to coordinates.
	ErrCityNotFound = errors.New("city not found")

	// ErrInjectedFailure is returned when the route contains the configured failure sentinel.
	ErrInjectedFailure = errors.New("injected route failure")
)

// NewCityNotFound reports that name is not in the place table.
func NewCityNotFound(name string) *shared.DomainError {
	return &shared.DomainError{
		Kind:    shared.KindUnresolvable,
		Message: fmt.Sprintf("City %q was not found", name),
		Err:     ErrCityNotFound,
	}
}

// NewInjectedFailure reports that the route was rejected because it contains city.
func NewInjectedFailure(city string) *shared.DomainError {
	return &shared.DomainError{
		Kind:    shared.KindUnavailable,
		Message: fmt.Sprintf("You have selected the city %s so the route calculation has failed", city),
		Err:     ErrInjectedFailure,
	}
}
