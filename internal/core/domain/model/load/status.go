package load

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

// Status represents the lifecycle state of a load. It implements a state
// machine with a fixed transition graph:
//
//	AVAILABLE ⇄ PENDING
//	AVAILABLE ──> BOOKED, CANCELLED
//	PENDING   ──> BOOKED, CANCELLED
//	BOOKED    ──> IN_TRANSIT, CANCELLED
//	IN_TRANSIT──> DELIVERED
//	DELIVERED, CANCELLED: terminal
//
// Every status change on a load goes through Transition, so a load can never
// take a path the graph does not contain.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available is the initial status: the load is listed and open for booking.
	Available

	// Pending marks a load under active negotiation. It can fall back to
	// Available if the negotiation dies.
	Pending

	// Booked marks a load committed to a carrier.
	Booked

	// InTransit marks a booked load that has been picked up.
	InTransit

	// Delivered is terminal; a delivered load is fully frozen.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Available: "AVAILABLE",
		Pending:   "PENDING",
		Booked:    "BOOKED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available: "AVAILABLE",
		Pending:   "PENDING",
		Booked:    "BOOKED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// getTransitions returns the outgoing edges of the status graph.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Available: {Pending, Booked, Cancelled},
		Pending:   {Available, Booked, Cancelled},
		Booked:    {InTransit, Cancelled},
		InTransit: {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses the wire form ("AVAILABLE", "IN_TRANSIT", ...).
// Returns a validation error naming the status field for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationError("status",
		fmt.Errorf("%q is not a recognized status", s))
}

// Validate rejects Unknown and any out-of-range value.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValidationError("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the wire form of the status, "UNKNOWN" for invalid values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the graph contains an edge from s to "to".
// Self-transitions are not in the graph and report false.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range getTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns the target status if the graph permits the move,
// or an InvalidTransitionError naming the attempted from -> to pair.
func (s Status) Transition(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}
