package cron

import "math/bits"

// daysOfMonthResolver computes, for a single (year, month), the set of
// actual calendar days that satisfy an expression's day-of-month and
// day-of-week constraints combined. Crontab semantics apply when both
// fields are restricted: a day is a hit if it satisfies *either*
// field, not both.
type daysOfMonthResolver struct {
	calendar CalendarProbe
}

// resolve returns a 31-bit mask (bit i = day-of-month i) of the days in
// (year, month) that satisfy e's day-of-month and day-of-week
// constraints, or 0 if the month has no matching day at all.
func (r daysOfMonthResolver) resolve(e *Expression, year, month int) uint64 {
	lastDay := r.calendar.LengthOfMonth(year, month)
	thisMonthMask := (domField.mask >> uint(63-lastDay)) << uint(63-lastDay)

	if e.daysOfMonth == domField.mask && e.daysOfWeek == dowField.mask {
		return thisMonthMask
	}

	firstWeekday := r.calendar.DayOfWeek(year, month, 1)
	lastWeekday := r.calendar.DayOfWeek(year, month, lastDay)

	var actual uint64

	if e.daysOfMonth != domField.mask {
		actual |= e.daysOfMonth

		if e.lastDayOfMonth {
			actual |= startBit >> uint(lastDay)
		}
		if e.lastWorkdayOfMonth {
			actual |= startBit >> uint(lastWorkdayOf(lastDay, lastWeekday))
		}

		workdays := e.workdaysOfMonth & thisMonthMask
		if workdays > 0 {
			start := 64 - bits.Len64(workdays)
			end := 63 - bits.TrailingZeros64(workdays)
			if start == 1 {
				actual |= startBit >> uint(firstWorkdayOf(firstWeekday))
				start++
			}
			for v := start; v <= end && v < lastDay; v++ {
				if workdays&(startBit>>uint(v)) != 0 {
					weekday := (firstWeekday + v - 1) % 7
					actual |= startBit >> uint(midWorkdayOf(v, weekday))
				}
			}
			if end == lastDay {
				actual |= startBit >> uint(lastWorkdayOf(lastDay, lastWeekday))
			}
		}
	}

	if e.daysOfWeek != dowField.mask {
		// The replicated masks cover five weeks (bits 1..35); a sixth
		// week is added here so days 30 and 31 are still reached after
		// shifting by a late first weekday.
		actual |= (e.daysOfWeek | e.daysOfWeek>>7) << uint(firstWeekday)

		// A w#n bit for a weekday earlier than the month's first weekday
		// would land one week early after the shift; move it a week later.
		ith := e.ithWeekdaysOfWeek
		var early uint64
		for w := 0; w < firstWeekday; w++ {
			for k := 0; k < 5; k++ {
				early |= startBit >> uint(1+w+7*k)
			}
		}
		ith = ith&^early | (ith&early)>>7
		actual |= ith << uint(firstWeekday)

		// Keep only the final seven days, lastDay-6 through lastDay.
		lastWeekdays := (e.lastWeekdaysOfWeek | e.lastWeekdaysOfWeek>>7) << uint(firstWeekday)
		lastWeekdays = (lastWeekdays << uint(lastDay-6)) >> uint(lastDay-6)
		actual |= lastWeekdays
	}

	return actual & thisMonthMask
}

// lastWorkdayOf returns the closest weekday to the last day of the
// month, without crossing into the next month.
func lastWorkdayOf(lastDay, lastWeekday int) int {
	switch lastWeekday {
	case 6: // Saturday
		return lastDay - 1
	case 0: // Sunday
		return lastDay - 2
	default:
		return lastDay
	}
}

// firstWorkdayOf returns the closest weekday to the first day of the
// month, without crossing into the previous month.
func firstWorkdayOf(firstWeekday int) int {
	switch firstWeekday {
	case 6: // Saturday
		return 3
	case 0: // Sunday
		return 2
	default:
		return 1
	}
}

// midWorkdayOf returns the closest weekday to midDay for a day that
// falls neither on the first nor the last day of the month.
func midWorkdayOf(midDay, weekday int) int {
	switch weekday {
	case 6: // Saturday
		return midDay - 1
	case 0: // Sunday
		return midDay + 1
	default:
		return midDay
	}
}
