package matcher

import (
	"github.com/cronbit/cronbit/job"
	"github.com/cronbit/cronbit/scheduler"
)

// JobStatus selects scheduled jobs by whether they are currently
// suspended (see Scheduler.PauseJob), independent of name or group.
type JobStatus struct {
	Suspended bool
}

var _ Matcher[scheduler.ScheduledJob] = (*JobStatus)(nil)

// JobActive matches jobs that are not currently paused.
func JobActive() Matcher[scheduler.ScheduledJob] {
	return &JobStatus{Suspended: false}
}

// JobPaused matches jobs that are currently paused.
func JobPaused() Matcher[scheduler.ScheduledJob] {
	return &JobStatus{Suspended: true}
}

// IsMatch implements Matcher.
func (s *JobStatus) IsMatch(sj scheduler.ScheduledJob) bool {
	return sj.JobDetail().Options().Suspended == s.Suspended
}

// runReporter is implemented by any Job that records the outcome of
// its most recent execution: ShellJob, CurlJob, FunctionJob, and a job
// wrapped with job.NewIsolatedJob.
type runReporter interface {
	LastReport() job.RunReport
}

// JobLastRunStatus selects scheduled jobs whose underlying job's most
// recent execution ended in the given status. Jobs that haven't run
// yet, or whose underlying type doesn't track a RunReport, never match.
type JobLastRunStatus struct {
	Status job.Status
}

var _ Matcher[scheduler.ScheduledJob] = (*JobLastRunStatus)(nil)

// JobLastFailed matches jobs whose most recent execution was recorded
// with StatusFailure.
func JobLastFailed() Matcher[scheduler.ScheduledJob] {
	return &JobLastRunStatus{Status: job.StatusFailure}
}

// JobLastSkipped matches jobs whose most recent fire was dropped instead
// of run, e.g. an isolated job whose previous execution was still in
// flight.
func JobLastSkipped() Matcher[scheduler.ScheduledJob] {
	return &JobLastRunStatus{Status: job.StatusSkipped}
}

// IsMatch implements Matcher.
func (s *JobLastRunStatus) IsMatch(sj scheduler.ScheduledJob) bool {
	reporter, ok := sj.JobDetail().Job().(runReporter)
	if !ok {
		return false
	}
	return reporter.LastReport().Status == s.Status
}
