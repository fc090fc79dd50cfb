package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalendarProbe_IsLeapYear(t *testing.T) {
	c := CalendarProbe{}
	assert.True(t, c.IsLeapYear(2016))
	assert.True(t, c.IsLeapYear(2000))
	assert.False(t, c.IsLeapYear(1900))
	assert.False(t, c.IsLeapYear(2013))
	assert.True(t, c.IsLeapYear(2020))
}

func TestCalendarProbe_LengthOfMonth(t *testing.T) {
	c := CalendarProbe{}
	assert.Equal(t, 28, c.LengthOfMonth(2013, 2))
	assert.Equal(t, 29, c.LengthOfMonth(2016, 2))
	assert.Equal(t, 30, c.LengthOfMonth(2013, 4))
	assert.Equal(t, 31, c.LengthOfMonth(2013, 1))
}

func TestCalendarProbe_DayOfWeek(t *testing.T) {
	c := CalendarProbe{}
	// 1970-01-01 was a Thursday.
	assert.Equal(t, 4, c.DayOfWeek(1970, 1, 1))
	// 2013-01-28 was a Monday.
	assert.Equal(t, 1, c.DayOfWeek(2013, 1, 28))
	// 2022-08-29 was a Monday.
	assert.Equal(t, 1, c.DayOfWeek(2022, 8, 29))
	// 2020-07-05 was a Sunday.
	assert.Equal(t, 0, c.DayOfWeek(2020, 7, 5))
	// 2013-11-29 was a Friday.
	assert.Equal(t, 5, c.DayOfWeek(2013, 11, 29))
}
