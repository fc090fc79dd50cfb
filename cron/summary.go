package cron

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// FieldSummary describes the compiled values of one field of an
// Expression, for diagnostic display.
type FieldSummary struct {
	Name   string
	Values string
}

// Summary decodes the compiled Expression into a human-readable
// per-field breakdown, useful for confirming what a spec actually
// compiled to.
func (e *Expression) Summary() []FieldSummary {
	summary := []FieldSummary{
		{secondField.name, describeMask(e.seconds, secondField.min, secondField.max)},
		{minuteField.name, describeMask(e.minutes, minuteField.min, minuteField.max)},
		{hourField.name, describeMask(e.hours, hourField.min, hourField.max)},
		{domField.name, e.describeDayOfMonth()},
		{monthField.name, describeMask(e.months, monthField.min, monthField.max)},
		{dowField.name, e.describeDayOfWeek()},
		{yearField.name, describeYears(e.years)},
	}
	return summary
}

func describeMask(mask uint64, min, max int) string {
	full := rangeMask(min, max)
	if mask&full == full {
		return "*"
	}
	var values []string
	for i := min; i <= max; i++ {
		if mask&(startBit>>i) != 0 {
			values = append(values, strconv.Itoa(i))
		}
	}
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ",")
}

func describeYears(words [yearWords]uint64) string {
	var values []string
	for w := 0; w < yearWords; w++ {
		for i := 0; i < 64; i++ {
			if words[w]&(startBit>>i) != 0 {
				values = append(values, strconv.Itoa(minYear+w*64+i))
			}
		}
	}
	switch {
	case len(values) == 0:
		return "(none)"
	case len(values) == maxYear-minYear+1:
		return "*"
	default:
		return strings.Join(values, ",")
	}
}

func (e *Expression) describeDayOfMonth() string {
	var extras []string
	if e.lastDayOfMonth {
		extras = append(extras, "L")
	}
	if e.lastWorkdayOfMonth {
		extras = append(extras, "LW")
	}
	if bits.OnesCount64(e.workdaysOfMonth) > 0 {
		extras = append(extras, "W")
	}
	base := describeMask(e.daysOfMonth, domField.min, domField.max)
	if len(extras) == 0 {
		return base
	}
	return fmt.Sprintf("%s +%s", base, strings.Join(extras, ","))
}

func (e *Expression) describeDayOfWeek() string {
	const weekMask = uint64(0xfe00000000000000)
	firstWeek := (e.daysOfWeek << 1) & weekMask
	base := describeMask(firstWeek, 0, 6)

	var extras []string
	if bits.OnesCount64(e.lastWeekdaysOfWeek) > 0 {
		extras = append(extras, "L")
	}
	if bits.OnesCount64(e.ithWeekdaysOfWeek) > 0 {
		extras = append(extras, "#")
	}
	if len(extras) == 0 {
		return base
	}
	return fmt.Sprintf("%s +%s", base, strings.Join(extras, ","))
}
