package timex

import "time"

// Clock is the time source used by services. Tests inject a FixedClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reports the wall-clock time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always reports T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
