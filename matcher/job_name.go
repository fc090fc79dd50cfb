//nolint:dupl
package matcher

import (
	"github.com/cronbit/cronbit/scheduler"
)

// JobName selects scheduled jobs by the name half of their JobKey,
// leaving the group untouched — useful when the same job name is
// reused across groups (e.g. one "backup" job per tenant group) and a
// caller wants every tenant's instance regardless of group.
type JobName struct {
	Operator *StringOperator
	Pattern  string
}

var _ Matcher[scheduler.ScheduledJob] = (*JobName)(nil)

// NewJobName returns a matcher comparing a job's name against pattern
// using operator.
func NewJobName(operator *StringOperator, pattern string) Matcher[scheduler.ScheduledJob] {
	return &JobName{
		Operator: operator,
		Pattern:  pattern,
	}
}

// JobNameEquals matches jobs whose name is exactly pattern.
func JobNameEquals(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobName(&StringEquals, pattern)
}

// JobNameEqualsFold matches jobs whose name equals pattern under
// case-insensitive comparison.
func JobNameEqualsFold(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobName(&StringEqualsFold, pattern)
}

// JobNameStartsWith matches jobs whose name starts with pattern.
func JobNameStartsWith(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobName(&StringStartsWith, pattern)
}

// JobNameEndsWith matches jobs whose name ends with pattern.
func JobNameEndsWith(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobName(&StringEndsWith, pattern)
}

// JobNameContains matches jobs whose name contains pattern.
func JobNameContains(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewJobName(&StringContains, pattern)
}

// IsMatch implements Matcher.
func (n *JobName) IsMatch(job scheduler.ScheduledJob) bool {
	return (*n.Operator)(job.JobDetail().JobKey().Name(), n.Pattern)
}
