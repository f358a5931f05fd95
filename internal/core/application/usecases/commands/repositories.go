// Package commands contains the write operations of the load lifecycle
// core. Every command follows the same shape: a validated command object,
// a handler that owns the transaction boundary, and persistence through the
// repository port. Handlers never retry version conflicts and never swallow
// errors; both policies belong to the caller.
package commands

import (
	"context"

	"loadboard/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers without exposing more of the persistence surface than each
// handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LoadRepoFactory provides access to the load repository within a
	// transaction.
	LoadRepoFactory interface {
		LoadRepository() ports.LoadRepository
	}

	// LoadUoW manages transactions for load operations.
	LoadUoW interface {
		TxManager
		LoadRepoFactory
	}

	// LoadUoWFactory creates new load unit of work instances.
	LoadUoWFactory interface {
		Create() LoadUoW
	}
)
