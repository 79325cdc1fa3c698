// Package humantime parses durations written for humans, like
// "10 seconds" or "2 days", in addition to Go duration strings.
package humantime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

const day = 24 * time.Hour

var units = map[string]time.Duration{
	"ns": time.Nanosecond, "nsec": time.Nanosecond, "nanosecond": time.Nanosecond, "nanoseconds": time.Nanosecond,
	"us": time.Microsecond, "usec": time.Microsecond, "microsecond": time.Microsecond, "microseconds": time.Microsecond,
	"ms": time.Millisecond, "msec": time.Millisecond, "millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "week": 7 * day, "weeks": 7 * day,
}

// Parse parses a duration. It accepts Go durations ("1h30m") and
// sequences of "<number> <unit>" pairs ("1 day 12 hours").
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	var total time.Duration
	rest := s
	for rest != "" {
		numEnd := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if numEnd == 0 {
			return 0, fmt.Errorf("invalid duration %q: expected a number", s)
		}
		if numEnd < 0 {
			return 0, fmt.Errorf("invalid duration %q: missing unit", s)
		}

		n, err := strconv.ParseInt(rest[:numEnd], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}

		rest = strings.TrimLeft(rest[numEnd:], " ")
		unitEnd := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if unitEnd < 0 {
			unitEnd = len(rest)
		}

		unit, ok := units[strings.ToLower(rest[:unitEnd])]
		if !ok {
			return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, rest[:unitEnd])
		}

		total += time.Duration(n) * unit
		rest = strings.TrimLeft(rest[unitEnd:], " ,")
	}

	return total, nil
}

// Duration is a time.Duration that keeps the text it was parsed from.
type Duration struct {
	time.Duration
	Original string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	v, err := Parse(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*d = Duration{Duration: v, Original: s}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	if d.Original != "" {
		return d.Original, nil
	}
	return d.Duration.String(), nil
}
