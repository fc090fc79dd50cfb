package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysOfMonthResolver_BothUnrestrictedYieldsWholeMonth(t *testing.T) {
	e, err := Compile("0 0 * * ?")
	require.NoError(t, err)
	got := resolver.resolve(e, 2013, 4)
	want := domField.mask & rangeMask(1, 30)
	assert.Equal(t, want, got)
}

func TestDaysOfMonthResolver_BothRestrictedIsUnion(t *testing.T) {
	// crontab semantics: if both day-of-month and day-of-week are
	// restricted, a day matches if it satisfies either.
	e, err := Compile("0 0 1 * MON")
	require.NoError(t, err)
	got := resolver.resolve(e, 2013, 1)
	// 2013-01-01 (day 1, explicit) and every Monday in Jan 2013 (7,14,21,28) should be set.
	for _, day := range []int{1, 7, 14, 21, 28} {
		assert.NotZero(t, got&(startBit>>uint(day)), "day %d should match", day)
	}
	assert.Zero(t, got&(startBit>>uint(2)))
}

func TestDaysOfMonthResolver_LastDayOfFebruaryLeapYear(t *testing.T) {
	e, err := Compile("0 0 L * *")
	require.NoError(t, err)
	got := resolver.resolve(e, 2016, 2)
	assert.Equal(t, uint64(0), got&^(startBit>>29))
	assert.NotZero(t, got&(startBit>>29))
}
