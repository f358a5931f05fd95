// Package jobs provides scheduled background tasks for the loadboard.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// LoadExpiryJob runs every minute and cancels stale postings: loads still
// AVAILABLE or PENDING whose scheduled pickup passed more than the grace
// period ago.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(listHandler, updateHandler, grace, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Expiry goes through the regular update command, so every cancellation is
// subject to the status state machine and the optimistic version check.
// Conflicts are expected concurrency, not failures: the job logs them at
// debug level and leaves the load for the next sweep.
package jobs
