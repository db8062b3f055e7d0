package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReconcileJobName is the name of the payment status reconciliation job
const ReconcileJobName = "payment_reconcile"

// PaymentReconciler derives every project's payment status again from its payments.
// It returns the number of projects whose stored status was corrected.
type PaymentReconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// ReconcileJob repairs payment statuses that drifted from the payment log,
// for example after payments were inserted outside the API.
type ReconcileJob struct {
	reconciler PaymentReconciler
	logger     *zap.Logger
	timeout    time.Duration
}

func NewReconcileJob(reconciler PaymentReconciler, logger *zap.Logger, timeout time.Duration) *ReconcileJob {
	return &ReconcileJob{
		reconciler: reconciler,
		logger:     logger,
		timeout:    timeout,
	}
}

// Run executes one reconciliation pass
func (j *ReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	fixed, err := j.reconciler.Reconcile(ctx)
	if err != nil {
		j.logger.Error("payment reconciliation failed",
			zap.Int("fixed", fixed),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("payment reconciliation completed",
		zap.Int("fixed", fixed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterReconcileJob adds the reconciliation job to the scheduler
func RegisterReconcileJob(scheduler *Scheduler, reconciler PaymentReconciler, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewReconcileJob(reconciler, logger, timeout)
	return scheduler.AddJob(ReconcileJobName, cronExpr, job.Run)
}
