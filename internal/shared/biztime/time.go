// Package biztime is the single source of wall-clock time for domain code.
// Everything is stored and transported in UTC.
package biztime

import "time"

// now is replaced in tests that need a fixed clock.
var now = time.Now

// NowUTC returns the current time in UTC, truncated to microseconds so that
// values survive a database round trip unchanged.
func NowUTC() time.Time {
	return now().UTC().Truncate(time.Microsecond)
}

// Freeze pins NowUTC to t and returns a function that restores the real
// clock.
func Freeze(t time.Time) (restore func()) {
	now = func() time.Time { return t }
	return func() { now = time.Now }
}
