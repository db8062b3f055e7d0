package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionPurgeJobName is the name of the expired session purge job
const SessionPurgeJobName = "session_purge"

// PurgeFunc drops expired sessions and returns how many were removed
type PurgeFunc func(ctx context.Context) (int, error)

// SessionPurgeJob keeps the in-memory session cache from growing without bound
type SessionPurgeJob struct {
	purge   PurgeFunc
	logger  *zap.Logger
	timeout time.Duration
}

func NewSessionPurgeJob(purge PurgeFunc, logger *zap.Logger, timeout time.Duration) *SessionPurgeJob {
	return &SessionPurgeJob{purge: purge, logger: logger, timeout: timeout}
}

// Run executes one purge pass
func (j *SessionPurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	removed, err := j.purge(ctx)
	if err != nil {
		j.logger.Error("session purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("expired sessions purged", zap.Int("removed", removed))
	}
}

// RegisterSessionPurgeJob adds the purge job to the scheduler
func RegisterSessionPurgeJob(scheduler *Scheduler, purge PurgeFunc, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewSessionPurgeJob(purge, logger, timeout)
	return scheduler.AddJob(SessionPurgeJobName, cronExpr, job.Run)
}
