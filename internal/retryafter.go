// internal/retryafter.go
// ----------------------
// Parsing for the Retry-After response header. Backends signal throttling
// and maintenance windows either as delta-seconds ("120") or as an HTTP
// date; both forms resolve to a wait duration relative to now.
package internal

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryAfter parses a Retry-After header value into a wait duration.
// Returns false for an empty, malformed, or already-elapsed value.
func RetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}

	when, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	wait := when.Sub(now)
	if wait <= 0 {
		return 0, false
	}
	return wait, true
}
