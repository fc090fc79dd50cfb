package job

import (
	"context"
	"time"
)

type fireTimeKey struct{}

// WithFireTime returns a context carrying the fire time a scheduler
// intended for a job's execution, as UTC Unix nanoseconds — the same
// convention trigger.Trigger uses for NextFireTime. A job's Execute
// method can read it back with FireTime to measure scheduling drift.
func WithFireTime(ctx context.Context, fireTime int64) context.Context {
	return context.WithValue(ctx, fireTimeKey{}, fireTime)
}

// FireTime returns the fire time stashed in ctx by WithFireTime, and
// whether one was present. It is absent when a job is run outside of a
// scheduler, e.g. directly in a test.
func FireTime(ctx context.Context) (int64, bool) {
	fireTime, ok := ctx.Value(fireTimeKey{}).(int64)
	return fireTime, ok
}

// RunReport summarizes one execution of a job: the outcome, when the
// scheduler meant to fire it, when it actually started, and how far
// the two drifted apart. A job stuck behind a full worker pool or a
// slow previous run will show positive Drift.
type RunReport struct {
	Status    Status
	FireTime  int64 // scheduled fire time, UTC Unix nanoseconds; zero if unknown
	StartedAt int64 // actual execution start, UTC Unix nanoseconds
	Drift     time.Duration
	Err       error
}

// newRunReport starts a RunReport for an execution beginning at now,
// filling in FireTime and Drift from ctx when the scheduler set one.
func newRunReport(ctx context.Context, now int64) RunReport {
	report := RunReport{StartedAt: now}
	if fireTime, ok := FireTime(ctx); ok {
		report.FireTime = fireTime
		report.Drift = time.Duration(now - fireTime)
	}
	return report
}
