package stockroom

import (
	"fmt"
	"os"
	"time"
)

// TimestampFormat is the layout used to persist and display event timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// EnvTestingNow pins the clock, so that documentation examples produce stable output.
const EnvTestingNow = "STOCK_TESTING_NOW"

// Now returns the current local time truncated to the second.
//
// If the environment variable STOCK_TESTING_NOW is set, it is parsed with
// TimestampFormat and returned instead.
func Now() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		t, err := time.ParseInLocation(TimestampFormat, v, time.Local)
		if err != nil {
			panic(fmt.Sprintf("invalid %s=%q: %v", EnvTestingNow, v, err))
		}
		return t
	}
	return time.Now().Truncate(time.Second)
}

// ParseTimestamp parses a timestamp in TimestampFormat, in local time.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q want format %q: %w", s, TimestampFormat, err)
	}
	return t, nil
}
