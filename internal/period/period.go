// Package period holds the selected reference date for the monthly view and
// derives the calendar-month window from it.
package period

import (
	"sync"
	"time"
)

// Selector holds one reference date. It exists only for the session's
// in-memory lifetime and defaults to "now".
type Selector struct {
	mu  sync.RWMutex
	ref time.Time
}

func NewSelector() *Selector {
	return &Selector{ref: time.Now()}
}

// Date returns the selected reference date.
func (s *Selector) Date() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ref
}

// SetDate sets the reference date directly.
func (s *Selector) SetDate(d time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = d
}

// Next shifts the reference date one calendar month forward.
func (s *Selector) Next() {
	s.shift(1)
}

// Previous shifts the reference date one calendar month back.
func (s *Selector) Previous() {
	s.shift(-1)
}

func (s *Selector) shift(months int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = AddMonths(s.ref, months)
}

// Bounds returns the inclusive [startOfMonth, endOfMonth] window for the
// selected date, in the date's location. The end bound is the last
// representable instant of the month.
func (s *Selector) Bounds() (time.Time, time.Time) {
	d := s.Date()
	return StartOfMonth(d), EndOfMonth(d)
}

// AddMonths shifts t by the given number of calendar months, keeping the
// same day of month clipped to the target month's length: Jan 31 + 1 month
// is Feb 28 (or 29), not Mar 2/3.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// StartOfMonth returns the first instant of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func daysIn(year int, m time.Month) int {
	// day 0 of the next month normalizes to this month's last day
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
