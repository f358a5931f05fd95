package kernel

import (
	"errors"
	"fmt"
	"strings"

	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when validating a Location that
// did not go through NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is one stop of a freight route: a city, a state or region code,
// and an optional postal code. City and state are required; once a load is
// created its origin and destination are never null.
//
// Location is an immutable value object. The zero value fails validation.
type Location struct { //nolint:recvcheck //using for validation
	city       string
	state      string
	postalCode string

	guard guard.ConstructorGuard
}

// NewLocation builds a validated Location. City and state must be non-blank;
// postalCode may be empty.
func NewLocation(city, state, postalCode string) (Location, error) {
	loc := Location{
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setCity(city), loc.setState(state)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate ensures the location was properly constructed.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// City returns the city name.
func (l Location) City() string {
	return l.city
}

// State returns the state or region code.
func (l Location) State() string {
	return l.state
}

// PostalCode returns the postal code, empty when not supplied.
func (l Location) PostalCode() string {
	return l.postalCode
}

// IsEqual compares two locations field by field.
func (l Location) IsEqual(other Location) bool {
	return l.city == other.city && l.state == other.state && l.postalCode == other.postalCode
}

// String renders "City, ST" or "City, ST 12345".
func (l Location) String() string {
	if l.postalCode == "" {
		return fmt.Sprintf("%s, %s", l.city, l.state)
	}
	return fmt.Sprintf("%s, %s %s", l.city, l.state, l.postalCode)
}

func (l *Location) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	l.city = city
	return nil
}

func (l *Location) setState(state string) error {
	state = strings.TrimSpace(state)
	if state == "" {
		return errs.NewValueIsRequiredError("state")
	}
	l.state = state
	return nil
}
