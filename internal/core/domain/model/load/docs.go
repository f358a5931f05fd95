// Package load provides the Load aggregate of the freight brokerage core:
// a shipment listing with route, schedule, commercial terms, cargo profile,
// and a status-driven lifecycle.
//
// The package includes:
//   - Load: the aggregate root, holding every invariant of a listing
//   - Status: the lifecycle state machine with its fixed transition graph
//   - EquipmentType: the enumerated equipment catalog
//   - ChangeSet: a sparse partial update merged atomically onto a load
//   - reference number formatting (LD-YYYY-MM-NNNNN)
//
// Loads are pure data plus invariant checks; all I/O lives behind the
// repository port. A load is created in AVAILABLE status at version 0,
// mutated only through validated merges, and destroyed only by soft delete.
package load
