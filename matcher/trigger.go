package matcher

import (
	"github.com/cronbit/cronbit/scheduler"
)

// TriggerDescription selects scheduled jobs by their trigger's
// description, e.g. finding every job driven by a cron expression that
// mentions a particular field: TriggerDescriptionContains("*/5") picks
// out every five-unit schedule regardless of which field it's in.
type TriggerDescription struct {
	Operator *StringOperator
	Pattern  string
}

var _ Matcher[scheduler.ScheduledJob] = (*TriggerDescription)(nil)

// NewTriggerDescription returns a matcher comparing a job's trigger
// description against pattern using operator.
func NewTriggerDescription(operator *StringOperator, pattern string) Matcher[scheduler.ScheduledJob] {
	return &TriggerDescription{
		Operator: operator,
		Pattern:  pattern,
	}
}

// TriggerDescriptionContains matches jobs whose trigger description
// contains pattern.
func TriggerDescriptionContains(pattern string) Matcher[scheduler.ScheduledJob] {
	return NewTriggerDescription(&StringContains, pattern)
}

// IsMatch implements Matcher.
func (t *TriggerDescription) IsMatch(sj scheduler.ScheduledJob) bool {
	return (*t.Operator)(sj.Trigger().Description(), t.Pattern)
}
