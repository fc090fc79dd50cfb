package cron

// CalendarProbe answers the small set of Gregorian calendar questions
// the resolver and next-fire engine need: whether a year is leap, how
// many days a month has, and which weekday a given date falls on. It
// works entirely in the proleptic Gregorian calendar using a Rata
// Die-style epoch-day count, so the core package never needs to import
// "time" or reason about locations.
//
// Weekdays are numbered 0 (Sunday) through 6 (Saturday), matching the
// day-of-week field's domain.
type CalendarProbe struct{}

// daysBeforeMonth[m] is the number of days in a non-leap year before
// the first day of month m (1-indexed; index 0 unused).
var daysBeforeMonth = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

var monthLengths = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysEpochOffset is the number of days from the proleptic epoch
// 0000-01-01 to 1970-01-01, used to translate the Rata Die epoch day
// (which counts from year 0000) into a Unix-epoch-relative count.
const daysEpochOffset = 719528

// IsLeapYear reports whether year is a leap year in the Gregorian
// calendar.
func (CalendarProbe) IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LengthOfMonth returns the number of days in the given month (1-12)
// of the given year.
func (c CalendarProbe) LengthOfMonth(year, month int) int {
	if month == 2 && c.IsLeapYear(year) {
		return 29
	}
	return monthLengths[month]
}

// epochDay returns the number of days since 1970-01-01 for the given
// proleptic Gregorian date. The formula follows the standard
// year/month/day-to-epoch-day conversion used by java.time.LocalDate
// and its ports: count whole years, add leap-day corrections, add the
// days contributed by whole months already elapsed in the year, then
// add the day-of-month offset.
func (c CalendarProbe) epochDay(year, month, day int) int64 {
	y := int64(year)
	m := int64(month)
	total := int64(0)
	total += 365 * y
	if y >= 0 {
		total += (y+3)/4 - (y+99)/100 + (y+399)/400
	} else {
		total -= -y/4 - -y/100 + -y/400
	}
	total += (367*m - 362) / 12
	total += int64(day - 1)
	if m > 2 {
		total--
		if !c.IsLeapYear(year) {
			total--
		}
	}
	return total - daysEpochOffset
}

// DayOfWeek returns the weekday of the given date, 0 for Sunday
// through 6 for Saturday.
func (c CalendarProbe) DayOfWeek(year, month, day int) int {
	ed := c.epochDay(year, month, day)
	return int(floorMod(ed+4, 7))
}

func floorMod(x, m int64) int64 {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}
