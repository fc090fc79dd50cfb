package scheduler

import (
	"time"

	"github.com/cronbit/cronbit/job"
)

// JobDetailOptions carries per-job scheduling options.
type JobDetailOptions struct {
	// MaxRetries is the maximum number of retries before aborting the
	// current job execution. Default: 0.
	MaxRetries int

	// RetryInterval is the fixed interval between retry attempts.
	// Default: 1 second.
	RetryInterval time.Duration

	// Replace indicates whether scheduling this job should replace an
	// existing job with the same key. Default: false.
	Replace bool

	// Suspended indicates whether the job starts out paused.
	// Default: false.
	Suspended bool
}

// NewDefaultJobDetailOptions returns JobDetailOptions with default values.
func NewDefaultJobDetailOptions() *JobDetailOptions {
	return &JobDetailOptions{
		MaxRetries:    0,
		RetryInterval: time.Second,
		Replace:       false,
		Suspended:     false,
	}
}

// JobDetail conveys the identity and options of a scheduled Job.
type JobDetail struct {
	job  job.Job
	key  *JobKey
	opts *JobDetailOptions
}

// NewJobDetail returns a new JobDetail with default options.
func NewJobDetail(j job.Job, key *JobKey) *JobDetail {
	return NewJobDetailWithOptions(j, key, NewDefaultJobDetailOptions())
}

// NewJobDetailWithOptions returns a new JobDetail configured as specified.
func NewJobDetailWithOptions(j job.Job, key *JobKey, opts *JobDetailOptions) *JobDetail {
	if opts == nil {
		opts = NewDefaultJobDetailOptions()
	}
	return &JobDetail{job: j, key: key, opts: opts}
}

// Job returns the underlying Job.
func (jd *JobDetail) Job() job.Job {
	return jd.job
}

// JobKey returns the JobDetail's identifying key.
func (jd *JobDetail) JobKey() *JobKey {
	return jd.key
}

// Options returns the JobDetail's options.
func (jd *JobDetail) Options() *JobDetailOptions {
	return jd.opts
}
