// Package clock supplies the notion of "now" and "today" used by booking rules.
package clock

import (
	"chappbooking/shared/timezone"
	"time"
)

type Clock interface {
	Now() time.Time
	// Today is the current calendar date in the application timezone, as midnight UTC.
	Today() time.Time
}

type systemClock struct{}

func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return timezone.Now()
}

func (c systemClock) Today() time.Time {
	return DateOf(c.Now())
}

type fixedClock struct {
	now time.Time
}

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func (c fixedClock) Today() time.Time {
	return DateOf(c.now)
}

// DateOf drops the time of day, keeping the calendar date t shows in its own location.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
