//nolint:dupl
package matcher

import (
	"github.com/cronbit/cronbit/scheduler"
)

// JobGroup selects scheduled jobs by the group half of their JobKey —
// e.g. pausing every job in a "nightly-batch" group at once rather
// than tracking each job's key individually.
type JobGroup struct {
	Operator *StringOperator
	Pattern  string
}

var _ Matcher[scheduler.ScheduledJob] = (*JobGroup)(nil)

// NewJobGroup returns a matcher comparing a job's group against pattern
// using operator.
func NewJobGroup(operator *StringOperator, pattern string) Matcher[scheduler.ScheduledJob] {
	return &JobGroup{
		Operator: operator,
		Pattern:  pattern,
	}
}

// JobGroupEquals matches jobs whose group is exactly pattern.
func JobGroupEquals(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobGroup(&StringEquals, pattern)
}

// JobGroupEqualsFold matches jobs whose group equals pattern under
// case-insensitive comparison.
func JobGroupEqualsFold(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobGroup(&StringEqualsFold, pattern)
}

// JobGroupStartsWith matches jobs whose group starts with pattern.
func JobGroupStartsWith(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobGroup(&StringStartsWith, pattern)
}

// JobGroupEndsWith matches jobs whose group ends with pattern.
func JobGroupEndsWith(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobGroup(&StringEndsWith, pattern)
}

// JobGroupContains matches jobs whose group contains pattern.
func JobGroupContains(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobGroup(&StringContains, pattern)
}

// IsMatch implements Matcher.
func (g *JobGroup) IsMatch(job scheduler.ScheduledJob) bool {
	return (*g.Operator)(job.JobDetail().JobKey().Group(), g.Pattern)
}
