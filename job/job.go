// Package job provides the Job interface a scheduler invokes when a
// trigger fires, plus a handful of concrete jobs: shell commands,
// HTTP requests, and arbitrary functions.
package job

import "context"

// Job is implemented by anything a scheduler can execute when a
// trigger fires.
type Job interface {
	// Execute is called by a scheduler when the trigger associated
	// with this job fires.
	Execute(context.Context) error

	// Description returns a human-readable description of the job.
	Description() string
}

// Sep separates a job's type name from its identifying detail in the
// descriptions built by the jobs in this package.
const Sep = ": "
