package kernel

import (
	"fmt"

	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDistanceIsNotConstructed is returned when validating a Distance that
// did not go through a constructor.
var ErrDistanceIsNotConstructed = errs.NewValueIsRequiredError(
	"distance must be created via NewDistance or DistanceFromString")

// Distance is a mileage figure carried as a decimal to preserve fractional
// miles without float drift. Distances are non-negative; the zero value
// fails validation.
type Distance struct { //nolint:recvcheck //using for validation
	miles decimal.Decimal

	guard guard.ConstructorGuard
}

// NewDistance builds a Distance from a decimal mile count, rounded to one
// decimal place.
func NewDistance(miles decimal.Decimal) (Distance, error) {
	if miles.IsNegative() {
		return Distance{}, errs.NewValueIsInvalidErrorWithCause("miles",
			fmt.Errorf("%s is negative", miles))
	}
	return Distance{
		miles: miles.Round(1),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// DistanceFromString parses a decimal string such as "847.5".
func DistanceFromString(s string) (Distance, error) {
	miles, err := decimal.NewFromString(s)
	if err != nil {
		return Distance{}, errs.NewValueIsInvalidErrorWithCause("miles", err)
	}
	return NewDistance(miles)
}

// Validate ensures the distance was properly constructed.
func (d Distance) Validate() error {
	return d.guard.Validate(ErrDistanceIsNotConstructed)
}

// Miles returns the underlying decimal mile count.
func (d Distance) Miles() decimal.Decimal {
	return d.miles
}

// IsZero reports a zero mile count, which cannot divide a rate.
func (d Distance) IsZero() bool {
	return d.miles.IsZero()
}

// IsEqual reports numeric equality.
func (d Distance) IsEqual(other Distance) bool {
	return d.miles.Equal(other.miles)
}

// String renders the mile count with one decimal place.
func (d Distance) String() string {
	return d.miles.StringFixed(1)
}
