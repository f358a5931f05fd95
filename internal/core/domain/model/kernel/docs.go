// Package kernel provides the shared domain primitives of the load board.
//
// It contains the value objects used across aggregates:
//   - UUID: opaque entity identity
//   - Location: a city/state/postal-code stop on a route
//   - Money: a non-negative monetary amount with cent precision
//   - Distance: a decimal mileage figure
//
// All value objects are immutable, validate on construction, and fail
// validation as zero values, so domain state can never hold an unchecked
// primitive.
package kernel
