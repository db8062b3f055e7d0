package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeReconciler struct {
	calls int
	fixed int
	err   error
	ctx   context.Context
}

func (f *fakeReconciler) Reconcile(ctx context.Context) (int, error) {
	f.calls++
	f.ctx = ctx
	return f.fixed, f.err
}

func TestScheduler_AddAndRemoveJobs(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, RegisterReconcileJob(s, &fakeReconciler{}, zap.NewNop(), "0 0 3 * * *", time.Minute))
	require.NoError(t, RegisterSessionPurgeJob(s, func(context.Context) (int, error) { return 0, nil }, zap.NewNop(), "@every 5m", time.Minute))
	assert.Equal(t, []string{ReconcileJobName, SessionPurgeJobName}, s.JobNames())

	err := RegisterReconcileJob(s, &fakeReconciler{}, zap.NewNop(), "0 0 3 * * *", time.Minute)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, s.RemoveJob(ReconcileJobName))
	assert.Equal(t, []string{SessionPurgeJobName}, s.JobNames())
	assert.Error(t, s.RemoveJob(ReconcileJobName))
}

func TestScheduler_RejectsBadExpression(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	err := s.AddJob("bad", "not a cron", func() {})
	assert.Error(t, err)
	assert.Empty(t, s.JobNames())
}

func TestReconcileJob_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := &fakeReconciler{fixed: 2}

	NewReconcileJob(rec, zap.New(core), time.Minute).Run()

	assert.Equal(t, 1, rec.calls)
	_, hasDeadline := rec.ctx.Deadline()
	assert.True(t, hasDeadline)
	require.Equal(t, 1, logs.FilterMessage("payment reconciliation completed").Len())
	assert.Equal(t, int64(2), logs.FilterMessage("payment reconciliation completed").All()[0].ContextMap()["fixed"])
}

func TestReconcileJob_RunLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := &fakeReconciler{err: errors.New("db down")}

	NewReconcileJob(rec, zap.New(core), time.Minute).Run()

	assert.Equal(t, 1, logs.FilterMessage("payment reconciliation failed").Len())
}

func TestSessionPurgeJob_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	calls := 0
	job := NewSessionPurgeJob(func(context.Context) (int, error) {
		calls++
		return 3, nil
	}, zap.New(core), time.Second)

	job.Run()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, logs.FilterMessage("expired sessions purged").Len())
}
