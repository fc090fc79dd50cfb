package job

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrJobRunning is returned by an isolatedJob's Execute when a fire is
// dropped because the previous invocation is still running.
var ErrJobRunning = fmt.Errorf("job is running")

type isolatedJob struct {
	Job
	isRunning atomic.Bool

	mtx        sync.Mutex
	lastReport RunReport
	skipped    int
}

var _ Job = (*isolatedJob)(nil)

// IsolationStatus is implemented by a job returned from NewIsolatedJob,
// reporting the outcome of its most recent Execute call, including
// fires dropped because a previous run was still in flight.
type IsolationStatus interface {
	LastReport() RunReport
	Skipped() int
}

var _ IsolationStatus = (*isolatedJob)(nil)

// Execute is called by a scheduler when the trigger associated
// with this job fires. Overlapping fires are dropped rather than
// queued: a cron schedule that outruns its own job would otherwise
// pile up concurrent executions without bound.
func (j *isolatedJob) Execute(ctx context.Context) error {
	now := time.Now().UTC().UnixNano()
	if wasRunning := j.isRunning.Swap(true); wasRunning {
		report := newRunReport(ctx, now)
		report.Status = StatusSkipped
		report.Err = ErrJobRunning

		j.mtx.Lock()
		j.lastReport = report
		j.skipped++
		j.mtx.Unlock()
		return ErrJobRunning
	}
	defer j.isRunning.Store(false)

	err := j.Job.Execute(ctx)

	report := newRunReport(ctx, now)
	report.Err = err
	if err != nil {
		report.Status = StatusFailure
	} else {
		report.Status = StatusOK
	}
	j.mtx.Lock()
	j.lastReport = report
	j.mtx.Unlock()

	return err
}

// LastReport returns the RunReport from the most recent Execute call,
// including fires dropped because the underlying job was still running.
func (j *isolatedJob) LastReport() RunReport {
	j.mtx.Lock()
	defer j.mtx.Unlock()
	return j.lastReport
}

// Skipped returns the number of fires dropped so far because the
// underlying job's previous execution had not yet finished.
func (j *isolatedJob) Skipped() int {
	j.mtx.Lock()
	defer j.mtx.Unlock()
	return j.skipped
}

// NewIsolatedJob wraps a job object and ensures that only one
// instance of the job's Execute method can be called at a time.
func NewIsolatedJob(underlying Job) Job {
	return &isolatedJob{
		Job: underlying,
	}
}
