package cron

import "strings"

// Expression is a compiled cron schedule: a set of bitmasks, one per
// field, plus the handful of extended day-of-month/day-of-week flags
// that don't fit a plain mask (L, LW, nW, #, weekday-L). It has no
// notion of wall-clock time or time zone; Next operates on the
// broken-down DateTime tuple and the caller (see the trigger package)
// is responsible for converting to and from time.Time.
type Expression struct {
	source string

	seconds     uint64
	minutes     uint64
	hours       uint64
	daysOfMonth uint64
	months      uint64
	daysOfWeek  uint64
	years       [yearWords]uint64

	workdaysOfMonth    uint64
	lastDayOfMonth     bool
	lastWorkdayOfMonth bool
	ithWeekdaysOfWeek  uint64
	lastWeekdaysOfWeek uint64
}

// String returns the original expression text supplied to Compile.
func (e *Expression) String() string {
	return e.source
}

// yearWords is the number of 64-bit words needed to cover the year
// domain 1970-2199 (230 distinct values) with one bit per year.
const yearWords = 4

const minYear = 1970
const maxYear = 2199

var namedExpressions = map[string]string{
	"@yearly":   "0 0 0 1 1 *",
	"@annually": "0 0 0 1 1 *",
	"@monthly":  "0 0 0 1 * *",
	"@weekly":   "0 0 0 * * 0",
	"@daily":    "0 0 0 * * *",
	"@midnight": "0 0 0 * * *",
	"@hourly":   "0 0 * * * *",
}

// Compile parses a cron expression into an Expression ready for Next.
//
// The grammar accepts 5, 6, or 7 space-separated fields:
//
//	minute hour day-of-month month day-of-week            (seconds default to 0, year defaults to *)
//	second minute hour day-of-month month day-of-week      (year defaults to *)
//	second minute hour day-of-month month day-of-week year
//
// or one of the @yearly/@annually/@monthly/@weekly/@daily/@midnight/@hourly
// aliases.
func Compile(spec string) (*Expression, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return nil, ErrInvalidSpec
	}

	if strings.HasPrefix(trimmed, "@") {
		expanded, ok := namedExpressions[trimmed]
		if !ok {
			return nil, unknownAliasError(trimmed)
		}
		e, err := compileFields(expanded)
		if err != nil {
			return nil, err
		}
		e.source = spec
		return e, nil
	}

	e, err := compileFields(trimmed)
	if err != nil {
		return nil, err
	}
	e.source = spec
	return e, nil
}

var fieldLexers = [7]*fieldLexer{
	{desc: &secondField, populate: populateSeconds},
	{desc: &minuteField, populate: populateMinutes},
	{desc: &hourField, populate: populateHours},
	{desc: &domField, populate: populateDaysOfMonth, specialEntry: parseDomSpecialEntry},
	{desc: &monthField, populate: populateMonths},
	{desc: &dowField, populate: populateDaysOfWeek, specialEntry: parseDowSpecialEntry},
	{desc: &yearField, populate: populateYears},
}

func compileFields(trimmed string) (*Expression, error) {
	fields := strings.Fields(trimmed)
	if len(fields) < 5 {
		return nil, ErrMissingFields
	}
	if len(fields) > 7 {
		return nil, fieldSyntaxError("expression", trimmed)
	}

	e := &Expression{}

	lexers := fieldLexers[:]
	if len(fields) == 5 {
		// seconds omitted: default to :00
		e.seconds = startBit
		lexers = fieldLexers[1:]
	}

	for i, field := range fields {
		if err := lexers[i].parseField(e, field); err != nil {
			return nil, err
		}
	}

	if len(fields) < 7 {
		populateYears(e, minYear, maxYear, 1)
	}

	adjustWeekBits(e)
	return e, nil
}

// populate* functions OR the bits for [begin, end] stepped by step
// into the corresponding field of e. Bit i (counted from bit 63) marks
// integer value i, per the field's own domain.
func populateSeconds(e *Expression, begin, end, step int) {
	for i := begin; i <= end; i += step {
		e.seconds |= startBit >> i
	}
}

func populateMinutes(e *Expression, begin, end, step int) {
	for i := begin; i <= end; i += step {
		e.minutes |= startBit >> i
	}
}

func populateHours(e *Expression, begin, end, step int) {
	for i := begin; i <= end; i += step {
		e.hours |= startBit >> i
	}
}

func populateDaysOfMonth(e *Expression, begin, end, step int) {
	for i := begin; i <= end; i += step {
		e.daysOfMonth |= startBit >> i
	}
}

func populateMonths(e *Expression, begin, end, step int) {
	for i := begin; i <= end; i += step {
		e.months |= startBit >> i
	}
}

func populateDaysOfWeek(e *Expression, begin, end, step int) {
	for i := begin; i <= end; i += step {
		e.daysOfWeek |= startBit >> i
	}
}

func populateYears(e *Expression, begin, end, step int) {
	for i := begin - minYear; i <= end-minYear; i += step {
		e.years[i>>6] |= startBit >> uint(i&0x3f)
	}
}

// parseDomSpecialEntry handles the day-of-month field's extended
// tokens: `?` (unrestricted), `L` (last day of month), `LW` (last
// workday of month), and `nW` (nearest workday to day n).
func parseDomSpecialEntry(e *Expression, entry string) bool {
	switch entry {
	case "?":
		e.daysOfMonth |= domField.mask
		return true
	case "LW":
		e.lastWorkdayOfMonth = true
		return true
	case "L":
		e.lastDayOfMonth = true
		return true
	}
	if strings.HasSuffix(entry, "W") {
		n, ok := atoi(entry[:len(entry)-1])
		if !ok || n < domField.min || n > domField.max {
			return false
		}
		e.workdaysOfMonth |= startBit >> n
		return true
	}
	return false
}

// parseDowSpecialEntry handles the day-of-week field's extended
// tokens: `?` (unrestricted), `wL` (last occurrence of weekday w in
// the month), and `w#n` (nth occurrence of weekday w in the month).
func parseDowSpecialEntry(e *Expression, entry string) bool {
	if entry == "?" {
		e.daysOfWeek |= dowField.mask << 1
		return true
	}
	if strings.HasSuffix(entry, "L") {
		n := dowField.intFromToken(entry[:len(entry)-1])
		if n == -1 {
			return false
		}
		e.lastWeekdaysOfWeek |= startBit >> n
		return true
	}
	if idx := strings.IndexByte(entry, '#'); idx != -1 {
		weekday := dowField.intFromToken(entry[:idx])
		ith, ok := atoi(entry[idx+1:])
		if weekday == -1 || !ok || ith < 1 || ith > 5 {
			return false
		}
		if weekday == 7 {
			weekday = 0
		}
		n := (ith-1)*7 + weekday
		e.ithWeekdaysOfWeek |= startBit >> uint(n+1) // Sunday occupies bit 1
		return true
	}
	return false
}

// adjustWeekBits folds the day-of-week alias (7 == Sunday == 0) and
// expands the raw 0-7 bit pattern into the 35-bit "5 calendar weeks"
// mask used by the resolver: bit 1 represents day-of-month 1 being
// that weekday, bit 2 day-of-month 2, and so on across five weeks, so
// that shifting the mask left by a month's first weekday aligns it to
// actual day-of-month positions.
func adjustWeekBits(e *Expression) {
	if e.daysOfWeek&(startBit>>7) != 0 {
		e.daysOfWeek |= startBit
	}
	if e.lastWeekdaysOfWeek&(startBit>>7) != 0 {
		e.lastWeekdaysOfWeek |= startBit
	}

	const weekMask = uint64(0xfe00000000000000) // bits 0-6: one calendar week
	week := e.daysOfWeek & weekMask
	lastWeek := e.lastWeekdaysOfWeek
	for i := 0; i < 35; i += 7 {
		e.daysOfWeek |= week >> i
		e.lastWeekdaysOfWeek |= lastWeek >> i
	}

	e.daysOfWeek >>= 1
	e.lastWeekdaysOfWeek >>= 1
}
