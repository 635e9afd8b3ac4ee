// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order service.
//
// # Available Jobs
//
// 1. SagaRecoveryJob - Sweeps placement sagas stuck in the pending state and
// resolves them: completing the ones whose order made it to the database and
// compensating the rest.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(recoverSagasHandler, "0 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The recovery job's cron expression comes from configuration and uses the
// six-field format with seconds; "0 * * * * *" runs it once a minute. A saga
// only becomes eligible for recovery after its grace period, so the sweep
// never races a placement that is still in flight.
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick; per-saga failures are
// logged inside the command handler and do not stop the sweep.
package jobs
