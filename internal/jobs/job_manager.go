package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	loadExpiryJob *LoadExpiryJob
}

// NewJobManager creates a job manager with all required jobs wired to their
// command and query handlers.
func NewJobManager(
	listHandler queries.ListLoadsQueryHandler,
	updateHandler commands.UpdateLoadCommandHandler,
	expiryGrace time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		loadExpiryJob: NewLoadExpiryJob(listHandler, updateHandler, expiryGrace, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.loadExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start load expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.loadExpiryJob.Stop()
}
