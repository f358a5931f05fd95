// Package ports declares the contracts the load lifecycle core depends on.
// Implementations live in adapters; the core never imports them.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request, keeping
// concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Callers manage the
// lifecycle explicitly: Begin, then repository operations, then Commit or
// Rollback. An incomplete transaction has no observable effect.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// LoadRepository returns a LoadRepository bound to the current
	// transaction, or to the base connection when none is active.
	LoadRepository() LoadRepository
}
