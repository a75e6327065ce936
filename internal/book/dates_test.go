package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNextWeekdayOnOrAfter verifies the generic weekday-shift primitive: the
// result always lands on the target weekday, zero to six days ahead.
func TestNextWeekdayOnOrAfter(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		target   time.Weekday
		expected time.Time
	}{
		{
			name:     "Same weekday returns same date",
			date:     time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC), // Monday
			target:   time.Monday,
			expected: time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Saturday to Monday is two days",
			date:     time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC), // Saturday
			target:   time.Monday,
			expected: time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday to Monday is one day",
			date:     time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC), // Sunday
			target:   time.Monday,
			expected: time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Monday to Sunday wraps six days ahead",
			date:     time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC), // Monday
			target:   time.Sunday,
			expected: time.Date(2024, 9, 22, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Across a month boundary",
			date:     time.Date(2024, 8, 30, 0, 0, 0, 0, time.UTC), // Friday
			target:   time.Tuesday,
			expected: time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextWeekdayOnOrAfter(tt.date, tt.target)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestNextWeekdayOnOrAfter_Properties sweeps a full year of start dates
// against every target weekday and checks the two invariants of the contract.
func TestNextWeekdayOnOrAfter_Properties(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for day := 0; day < 366; day++ {
		d := start.AddDate(0, 0, day)
		for w := time.Sunday; w <= time.Saturday; w++ {
			got := NextWeekdayOnOrAfter(d, w)
			assert.Equal(t, w, got.Weekday(), "result must land on the target weekday")

			ahead := int(got.Sub(d).Hours() / 24)
			assert.GreaterOrEqual(t, ahead, 0, "result must not be in the past")
			assert.LessOrEqual(t, ahead, 6, "result must be within six days")
		}
	}
}

// TestAdjustBirthday verifies the weekend shift: Saturday +2, Sunday +1,
// weekdays untouched.
func TestAdjustBirthday(t *testing.T) {
	tests := []struct {
		name     string
		raw      time.Time
		expected time.Time
	}{
		{
			name:     "Saturday shifts to Monday (+2)",
			raw:      time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday shifts to Monday (+1)",
			raw:      time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Monday is unchanged",
			raw:      time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Friday is unchanged",
			raw:      time.Date(2024, 9, 13, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 9, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Saturday at year end rolls into January",
			raw:      time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AdjustBirthday(tt.raw))
		})
	}
}

// TestAdjustBirthday_Properties checks that the observed date never falls on
// a weekend and that the adjustment is idempotent.
func TestAdjustBirthday_Properties(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	for day := 0; day < 730; day++ {
		d := start.AddDate(0, 0, day)
		adjusted := AdjustBirthday(d)

		assert.NotEqual(t, time.Saturday, adjusted.Weekday())
		assert.NotEqual(t, time.Sunday, adjusted.Weekday())
		assert.Equal(t, adjusted, AdjustBirthday(adjusted), "adjust must be idempotent")

		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			assert.Equal(t, d, adjusted, "weekdays must pass through unchanged")
		}
	}
}
