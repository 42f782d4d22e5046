package worktime

import (
	"fmt"
	"time"
)

// Placeholder is rendered wherever a duration cannot be computed.
const Placeholder = "--"

// Duration is an elapsed span between two wall-clock times on the same day.
type Duration struct {
	Seconds  int64
	Readable string
}

var clockLayouts = []string{"15:04:05", "15:04"}

// ParseClock parses a wall-clock time-of-day string ("09:00:00" or "09:00").
func ParseClock(s string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SessionDuration computes the elapsed duration between two time-of-day
// strings interpreted against the same reference date. A missing or
// unparseable endpoint, or an out-of-order pair, yields a zero duration
// rendered as the placeholder rather than an error.
func SessionDuration(in, out *string) Duration {
	if in == nil || out == nil {
		return Duration{Seconds: 0, Readable: Placeholder}
	}

	start, ok := ParseClock(*in)
	if !ok {
		return Duration{Seconds: 0, Readable: Placeholder}
	}
	end, ok := ParseClock(*out)
	if !ok {
		return Duration{Seconds: 0, Readable: Placeholder}
	}

	seconds := int64(end.Sub(start) / time.Second)
	if seconds < 0 {
		seconds = 0
	}

	return Duration{Seconds: seconds, Readable: FormatDuration(seconds)}
}

// FormatDuration renders whole seconds as zero-padded "HH:MM" with
// floor-truncated hours and minutes. Non-positive durations render as
// the placeholder.
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return Placeholder
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
