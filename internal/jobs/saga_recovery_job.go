package jobs

import (
	"context"
	"log/slog"

	"orderservice/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SagaRecoveryJob sweeps placement sagas that were left pending by a crash or
// a collaborator outage. Each run either completes them, compensates and fails
// them, or leaves them for a later run.
type SagaRecoveryJob struct {
	handler commands.RecoverPlacementSagasCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSagaRecoveryJob creates the recovery job. The cron spec uses the
// six-field format with seconds, e.g. "0 * * * * *" for every minute.
func NewSagaRecoveryJob(handler commands.RecoverPlacementSagasCommandHandler,
	spec string, logger *slog.Logger,
) *SagaRecoveryJob {
	return &SagaRecoveryJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "saga_recovery_job"),
	}
}

// Start schedules the recovery sweep.
func (j *SagaRecoveryJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewRecoverPlacementSagasCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Saga recovery job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Saga recovery job started", "spec", j.spec)
	return nil
}

// Stop stops the recovery job.
func (j *SagaRecoveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Saga recovery job stopped")
}
