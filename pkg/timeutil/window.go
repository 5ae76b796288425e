// Package timeutil parses the look-back windows accepted by --since.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	segment = regexp.MustCompile(`^(\d+)(h|d|w)`)
	units   = map[string]time.Duration{
		"h": time.Hour,
		"d": day,
		"w": 7 * day,
	}
)

// ParseWindow reads windows like "3d", "2w" or "1w3d12h". An empty input
// is a zero window, meaning no limit.
func ParseWindow(input string) (time.Duration, error) {
	rest := strings.ToLower(strings.ReplaceAll(input, " ", ""))
	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("invalid window %q, want something like 3d or 1w2d", input)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid window %q: %w", input, err)
		}
		unit := units[m[2]]
		if int64(n) > (math.MaxInt64-int64(total))/int64(unit) {
			return 0, fmt.Errorf("invalid window %q: too long", input)
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	return total, nil
}

// FormatWindow is the inverse of ParseWindow, dropping anything below an hour.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range []string{"w", "d", "h"} {
		if n := d / units[u]; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u)
			d -= n * units[u]
		}
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}

// Within reports whether t falls inside window ending at now. A zero window
// holds everything.
func Within(t, now time.Time, window time.Duration) bool {
	if window <= 0 {
		return true
	}
	return !t.Before(now.Add(-window))
}
