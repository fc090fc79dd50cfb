package cron

import "strings"

// fieldLexer parses the token grammar for a single cron field: plain
// values, `*`, `a-b` ranges, `/step` steps, comma-separated lists, and
// a per-field set of extended tokens (`?`, `L`, `LW`, `nW`, `w#n`,
// `wL`) handled by specialEntry.
type fieldLexer struct {
	desc *fieldDescriptor

	// populate ORs the bits for every value in [begin, end] stepped by
	// step into the compiled expression.
	populate func(e *Expression, begin, end, step int)

	// specialEntry handles a single comma-separated entry that isn't a
	// plain value, range, step, or `*`. It returns false if the entry
	// isn't recognized. Fields without extended grammar leave this nil.
	specialEntry func(e *Expression, entry string) bool
}

// parseField parses one whitespace-delimited field of a cron
// expression and folds its bits into e.
func (fl *fieldLexer) parseField(e *Expression, field string) error {
	for _, entry := range strings.Split(field, ",") {
		if err := fl.parseEntry(e, entry); err != nil {
			return err
		}
	}
	return nil
}

func (fl *fieldLexer) parseEntry(e *Expression, entry string) error {
	if entry == "*" {
		fl.populate(e, fl.desc.min, fl.desc.max, 1)
		return nil
	}
	if n := fl.desc.intFromToken(entry); n != -1 {
		fl.populate(e, n, n, 1)
		return nil
	}

	if idx := strings.IndexByte(entry, '/'); idx != -1 {
		step, ok := atoi(entry[idx+1:])
		if !ok || step < 1 || step > fl.desc.max-fl.desc.min {
			return fieldSyntaxError(fl.desc.name, entry)
		}
		if !fl.parseStep(e, entry[:idx], step) {
			return fieldSyntaxError(fl.desc.name, entry)
		}
		return nil
	}

	if strings.IndexByte(entry, '-') > 0 {
		if !fl.parseStep(e, entry, 1) {
			return fieldSyntaxError(fl.desc.name, entry)
		}
		return nil
	}

	if fl.specialEntry == nil || !fl.specialEntry(e, entry) {
		return fieldSyntaxError(fl.desc.name, entry)
	}
	return nil
}

// parseStep parses the left-hand side of an optional `/step` suffix:
// `*`, a bare value meaning "value through max", or an `a-b` range.
func (fl *fieldLexer) parseStep(e *Expression, entry string, step int) bool {
	if entry == "*" {
		fl.populate(e, fl.desc.min, fl.desc.max, step)
		return true
	}
	if n := fl.desc.intFromToken(entry); n != -1 {
		fl.populate(e, n, fl.desc.max, step)
		return true
	}

	idx := strings.IndexByte(entry, '-')
	if idx <= 0 {
		return false
	}
	begin := fl.desc.intFromToken(entry[:idx])
	end := fl.desc.intFromToken(entry[idx+1:])
	if begin == -1 || end == -1 {
		return false
	}
	if begin > end {
		if fl.desc.noWrap {
			return false
		}
		// Wrap-around range, e.g. "23-2" or "fri-mon": split into two
		// spans joined at the field's own boundary.
		fl.populate(e, begin, fl.desc.max, step)
		fl.populate(e, fl.desc.min, end, step)
		return true
	}
	fl.populate(e, begin, end, step)
	return true
}
