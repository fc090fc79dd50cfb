package cron

import "strings"

// fieldDescriptor holds the static metadata for one cron field: its
// valid integer range, the bitmask covering that range (bit i, counted
// from bit 63 downward, represents the integer value i), and, for
// fields with a textual-name grammar, the name table used to translate
// tokens such as "jan" or "fri" into integers.
type fieldDescriptor struct {
	name    string
	min     int
	max     int
	mask    uint64
	names   map[string]int // lower-cased name/abbreviation -> value
	dowLike bool           // accepts the numeric "7 aliases Sunday" rule
	noWrap  bool           // reject a-b ranges where a > b instead of wrapping
}

// startBit is the top bit of the 64-bit word; bit i (0-indexed from the
// top) is produced by startBit >> i.
const startBit uint64 = 1 << 63

// rangeMask returns a mask with bits min..max set (bit i = value i,
// counted from the top), matching the encoding in spec §3: shift a
// full set of `width` bits down from bit 0 to occupy min..max.
func rangeMask(min, max int) uint64 {
	width := max - min + 1
	return (^uint64(0) << (64 - width)) >> min
}

var monthNames = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

var weekdayNames = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

var (
	secondField = fieldDescriptor{name: "second", min: 0, max: 59, mask: rangeMask(0, 59)}
	minuteField = fieldDescriptor{name: "minute", min: 0, max: 59, mask: rangeMask(0, 59)}
	hourField   = fieldDescriptor{name: "hour", min: 0, max: 23, mask: rangeMask(0, 23)}
	domField    = fieldDescriptor{name: "day-of-month", min: 1, max: 31, mask: rangeMask(1, 31)}
	monthField  = fieldDescriptor{name: "month", min: 1, max: 12, mask: rangeMask(1, 12), names: monthNames}
	// dowField.mask is the fully-expanded 35-bit "5-week" mask (bits
	// 1..35), not the raw 0..7 range; the raw range only matters while
	// lexing individual tokens.
	dowField = fieldDescriptor{name: "day-of-week", min: 0, max: 7, mask: rangeMask(1, 35), names: weekdayNames, dowLike: true}
	yearField = fieldDescriptor{name: "year", min: 1970, max: 2199, noWrap: true}
)

// intFromToken converts a numeric or named token to an integer in the
// field's domain, or -1 if the token isn't recognized. Matching is
// case-insensitive; for the day-of-week field, "7" is accepted as a
// Sunday alias in addition to "0".
func (f *fieldDescriptor) intFromToken(s string) int {
	if n, ok := atoi(s); ok {
		if f.dowLike && n == 7 {
			return 7
		}
		if n >= f.min && n <= f.max {
			return n
		}
		return -1
	}
	if f.names != nil {
		if n, ok := f.names[strings.ToLower(s)]; ok {
			return n
		}
	}
	return -1
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
