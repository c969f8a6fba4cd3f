package database

import "time"

// Now returns the current UTC time truncated to microseconds, the finest
// precision every supported store keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NextTimestamp returns Now, or a moment just after prev when the clock has
// not advanced past it, so that successive updates always move forward.
func NextTimestamp(prev time.Time) time.Time {
	now := Now()
	if !now.After(prev) {
		return prev.UTC().Add(time.Microsecond)
	}
	return now
}
