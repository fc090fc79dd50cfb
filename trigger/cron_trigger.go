package trigger

import (
	"fmt"
	"time"

	"github.com/cronbit/cronbit/cron"
	"github.com/cronbit/cronbit/logger"
)

// CronTrigger fires according to a compiled cron.Expression. It
// converts between UTC Unix nanoseconds and the broken-down DateTime
// the cron package operates on, so the core algorithm never has to
// know about time.Time or time zones.
type CronTrigger struct {
	expression *cron.Expression
	logger     logger.Logger
}

var _ Trigger = (*CronTrigger)(nil)

// NewCronTrigger compiles spec and returns a CronTrigger for it. Next-fire
// diagnostics are discarded; use NewCronTriggerWithLogger to observe them.
func NewCronTrigger(spec string) (*CronTrigger, error) {
	return NewCronTriggerWithLogger(spec, logger.NoOpLogger{})
}

// NewCronTriggerWithLogger compiles spec and returns a CronTrigger that
// reports each next-fire computation to log, at trace level on success
// and warn level once the expression's year range is exhausted. A nil
// log falls back to a no-op logger.
func NewCronTriggerWithLogger(spec string, log logger.Logger) (*CronTrigger, error) {
	e, err := cron.Compile(spec)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &CronTrigger{expression: e, logger: log}, nil
}

// NextFireTime implements Trigger. prev is interpreted as UTC Unix
// nanoseconds; cron.ErrTimeExhausted is wrapped with the trigger's
// description when the expression's year mask admits no later instant.
func (t *CronTrigger) NextFireTime(prev int64) (int64, error) {
	from := toDateTime(time.Unix(0, prev).UTC())
	next, err := t.expression.Next(from)
	if err != nil {
		t.logger.Warn("cron schedule exhausted", "expression", t.expression.String(),
			"from", from.String(), "error", err)
		return 0, fmt.Errorf("%s: %w", t.Description(), err)
	}
	nextTime := fromDateTime(next)
	t.logger.Trace("computed next fire time", "expression", t.expression.String(),
		"from", from.String(), "next", nextTime.Format(time.RFC3339), "fields", t.expression.Summary())
	return nextTime.UnixNano(), nil
}

// Description implements Trigger.
func (t *CronTrigger) Description() string {
	return fmt.Sprintf("CronTrigger: %s", t.expression.String())
}

func toDateTime(tm time.Time) cron.DateTime {
	return cron.DateTime{
		Year:   tm.Year(),
		Month:  int(tm.Month()),
		Day:    tm.Day(),
		Hour:   tm.Hour(),
		Minute: tm.Minute(),
		Second: tm.Second(),
	}
}

func fromDateTime(dt cron.DateTime) time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second, 0, time.UTC)
}
