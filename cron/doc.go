// Package cron compiles extended unix-style cron expressions into
// bitmask-based schedules and computes their next fire time.
//
// Expressions may specify 5 to 7 whitespace-separated fields (seconds
// and years are optional, in that order of omission), support the
// standard *, -, /, and , operators with wrap-around ranges, and add
// the day-of-month L/LW/nW tokens and the day-of-week #n/L tokens
// found in Quartz-style crontabs. Instead of fields, a whole expression
// may be one of the @yearly, @annually, @monthly, @weekly, @daily,
// @midnight, and @hourly aliases.
//
// The package has no dependency on time.Time or time zones: Expression
// operates on the broken-down DateTime tuple, leaving wall-clock
// conversion to callers such as the trigger package.
package cron
