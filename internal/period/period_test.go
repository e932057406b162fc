package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "plain forward shift",
			start:  date(2024, time.March, 15),
			months: 1,
			want:   date(2024, time.April, 15),
		},
		{
			name:   "plain backward shift",
			start:  date(2024, time.March, 15),
			months: -1,
			want:   date(2024, time.February, 15),
		},
		{
			name:   "jan 31 clips to leap february",
			start:  date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "jan 31 clips to non-leap february",
			start:  date(2023, time.January, 31),
			months: 1,
			want:   date(2023, time.February, 28),
		},
		{
			name:   "mar 31 back clips to february",
			start:  date(2024, time.March, 31),
			months: -1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "may 31 forward clips to june 30",
			start:  date(2024, time.May, 31),
			months: 1,
			want:   date(2024, time.June, 30),
		},
		{
			name:   "year boundary forward",
			start:  date(2024, time.December, 10),
			months: 1,
			want:   date(2025, time.January, 10),
		},
		{
			name:   "year boundary backward",
			start:  date(2024, time.January, 10),
			months: -1,
			want:   date(2023, time.December, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.months))
		})
	}
}

func TestAddMonthsKeepsClock(t *testing.T) {
	start := time.Date(2024, time.January, 31, 13, 45, 30, 7, time.UTC)
	got := AddMonths(start, 1)
	assert.Equal(t, time.Date(2024, time.February, 29, 13, 45, 30, 7, time.UTC), got)
}

func TestBounds(t *testing.T) {
	s := NewSelector()
	s.SetDate(date(2024, time.February, 14))

	start, end := s.Bounds()
	assert.Equal(t, date(2024, time.February, 1), start)
	assert.Equal(t, date(2024, time.March, 1).Add(-time.Nanosecond), end)
}

func TestNextPrevious(t *testing.T) {
	s := NewSelector()
	s.SetDate(date(2024, time.January, 31))

	s.Next()
	assert.Equal(t, date(2024, time.February, 29), s.Date())

	s.Previous()
	// The clipped day is not restored; a second shift starts from Feb 29.
	assert.Equal(t, date(2024, time.January, 29), s.Date())
}

func TestSelectorDefaultsToNow(t *testing.T) {
	s := NewSelector()
	require.WithinDuration(t, time.Now(), s.Date(), time.Minute)
}

func TestEndOfMonth(t *testing.T) {
	end := EndOfMonth(date(2024, time.April, 10))
	assert.Equal(t, time.April, end.Month())
	assert.Equal(t, 30, end.Day())
	assert.True(t, end.Before(date(2024, time.May, 1)))
}
