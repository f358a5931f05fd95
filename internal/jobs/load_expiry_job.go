package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// expiryPageSize bounds one sweep batch.
const expiryPageSize = 100

// LoadExpiryJob cancels stale postings: loads still AVAILABLE or PENDING
// whose pickup time passed more than the grace period ago. Expiry goes
// through the ordinary update path, so the state machine and the version
// check still apply; losing a version race simply means a dispatcher touched
// the load first, and the next sweep re-evaluates it.
type LoadExpiryJob struct {
	listHandler   queries.ListLoadsQueryHandler
	updateHandler commands.UpdateLoadCommandHandler
	grace         time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewLoadExpiryJob creates a job that sweeps for stale loads every minute.
func NewLoadExpiryJob(
	listHandler queries.ListLoadsQueryHandler,
	updateHandler commands.UpdateLoadCommandHandler,
	grace time.Duration,
	logger *slog.Logger,
) *LoadExpiryJob {
	return &LoadExpiryJob{
		listHandler:   listHandler,
		updateHandler: updateHandler,
		grace:         grace,
		cron:          cron.New(),
		logger:        logger.With("component", "load_expiry_job"),
	}
}

// Start begins the expiry sweep on a one-minute schedule.
func (j *LoadExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Load expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Load expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry job.
func (j *LoadExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Load expiry job stopped")
}

// sweep cancels every expired load it can. Individual failures do not abort
// the sweep.
func (j *LoadExpiryJob) sweep(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.grace)

	for _, status := range []load.Status{load.Available, load.Pending} {
		if err := j.sweepStatus(ctx, status, cutoff); err != nil {
			return err
		}
	}

	return nil
}

func (j *LoadExpiryJob) sweepStatus(ctx context.Context, status load.Status, cutoff time.Time) error {
	// Always request page 1: each successful cancellation removes the load
	// from the filtered result, so advancing the page would skip rows.
	for {
		query, err := queries.NewListLoadsQuery(queries.ListLoadsParams{
			Status:   &status,
			PickupTo: &cutoff,
			SortBy:   queries.SortByPickupDate,
			Page:     1,
			PageSize: expiryPageSize,
		})
		if err != nil {
			return err
		}

		page, err := j.listHandler.Handle(ctx, query)
		if err != nil {
			return err
		}
		if len(page.Loads) == 0 {
			return nil
		}

		cancelled := 0
		for _, summary := range page.Loads {
			if j.cancel(ctx, summary) {
				cancelled++
			}
		}

		j.logger.InfoContext(ctx, "Expired stale loads",
			"status", status.String(),
			"matched", len(page.Loads),
			"cancelled", cancelled,
		)

		// Nothing on this page could be cancelled; stop rather than spin on
		// the same contested rows. The next sweep retries them.
		if cancelled == 0 {
			return nil
		}
		if !page.HasNext {
			return nil
		}
	}
}

// cancel moves one load to CANCELLED, reporting whether it succeeded.
// Races and concurrent state changes are expected here and only logged at
// debug level.
func (j *LoadExpiryJob) cancel(ctx context.Context, summary queries.LoadSummary) bool {
	cancelled := load.Cancelled
	cmd, err := commands.NewUpdateLoadCommand(summary.ID, summary.Version, load.ChangeSet{
		Status: &cancelled,
	})
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build expiry command",
			"load_id", summary.ID.String(), "error", err)
		return false
	}

	if _, err = j.updateHandler.Handle(ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrVersionConflict) ||
			errors.Is(err, errs.ErrInvalidTransition) ||
			errors.Is(err, errs.ErrLoadImmutable) ||
			errors.Is(err, errs.ErrLoadDeleted) ||
			errors.Is(err, errs.ErrLoadNotFound) {
			j.logger.DebugContext(ctx, "Load changed under expiry sweep",
				"load_id", summary.ID.String(), "error", err)
			return false
		}

		j.logger.ErrorContext(ctx, "Failed to expire load",
			"load_id", summary.ID.String(),
			"reference", summary.ReferenceNumber,
			"error", err)
		return false
	}

	return true
}
