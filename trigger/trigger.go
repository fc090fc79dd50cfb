// Package trigger adapts the calendar-free cron package to wall-clock
// time and defines the small interface a scheduler uses to ask "when
// should this job run next".
package trigger

import (
	"fmt"
	"time"
)

// Trigger computes successive fire times for a scheduled job. prev is
// the previous fire time (or the scheduling time, for the first call)
// as UTC Unix nanoseconds; the returned value uses the same
// convention. An error return means the trigger has no further fire
// times and the job should not be rescheduled.
type Trigger interface {
	NextFireTime(prev int64) (int64, error)
	Description() string
}

// SimpleTrigger fires repeatedly at a fixed interval.
type SimpleTrigger struct {
	Interval time.Duration
}

// NewSimpleTrigger returns a SimpleTrigger that reschedules a job every
// interval.
func NewSimpleTrigger(interval time.Duration) *SimpleTrigger {
	return &SimpleTrigger{Interval: interval}
}

// NextFireTime implements Trigger.
func (t *SimpleTrigger) NextFireTime(prev int64) (int64, error) {
	return prev + t.Interval.Nanoseconds(), nil
}

// Description implements Trigger.
func (t *SimpleTrigger) Description() string {
	return fmt.Sprintf("SimpleTrigger with interval %s", t.Interval)
}

// RunOnceTrigger fires exactly once, after delay, then expires.
type RunOnceTrigger struct {
	Delay   time.Duration
	expired bool
}

// NewRunOnceTrigger returns a RunOnceTrigger that fires once after delay.
func NewRunOnceTrigger(delay time.Duration) *RunOnceTrigger {
	return &RunOnceTrigger{Delay: delay}
}

// NextFireTime implements Trigger.
func (t *RunOnceTrigger) NextFireTime(prev int64) (int64, error) {
	if t.expired {
		return 0, errRunOnceExpired
	}
	t.expired = true
	return prev + t.Delay.Nanoseconds(), nil
}

// Description implements Trigger.
func (t *RunOnceTrigger) Description() string {
	if t.expired {
		return "RunOnceTrigger (expired)"
	}
	return "RunOnceTrigger (pending)"
}

var errRunOnceExpired = fmt.Errorf("run-once trigger already fired")
