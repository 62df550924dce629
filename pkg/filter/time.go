package filter

import (
	"regexp"
	"time"

	"github.com/grafana/grafana-plugin-sdk-go/backend/gtime"
)

// TimeFilter matches timestamps that fall on one side of a fixed limit.
// The limit is set at construction time and never changes, so a single
// filter can be shared by any number of concurrent readers.
type TimeFilter struct {
	limit  time.Time
	before bool
}

// Before returns a filter that matches timestamps at or before the limit
// described by s, resolved relative to refTime. The second return value is
// false if s is neither a valid duration nor a valid date.
func Before(refTime time.Time, s string) (TimeFilter, bool) {
	limit, ok := parseLimit(refTime, s)
	if !ok {
		return TimeFilter{}, false
	}

	return TimeFilter{limit: limit, before: true}, true
}

// After returns a filter that matches timestamps at or after the limit
// described by s, resolved relative to refTime. The second return value is
// false if s is neither a valid duration nor a valid date.
func After(refTime time.Time, s string) (TimeFilter, bool) {
	limit, ok := parseLimit(refTime, s)
	if !ok {
		return TimeFilter{}, false
	}

	return TimeFilter{limit: limit}, true
}

// AppliesTo reports whether t falls on this filter's side of the limit.
// The limit itself is always included.
func (f TimeFilter) AppliesTo(t time.Time) bool {
	if f.before {
		return !t.After(f.limit)
	}

	return !t.Before(f.limit)
}

// parseLimit converts a user-supplied string into an absolute limit. It first
// tries the string as a duration back from refTime ("30sec", "2h", "1h30m"),
// then as a loose date ("2010-10-10", "2010-10-10 10:10:10"). Bare dates get
// a midnight time-of-day appended before the second attempt. Date strings are
// parsed as UTC and then reinterpreted in the local timezone, since a user
// who types "2010-10-10" means midnight on their own clock.
func parseLimit(refTime time.Time, s string) (time.Time, bool) {
	if duration, ok := parseDuration(s); ok {
		return refTime.Add(-duration), true
	}

	parsed, err := parseWeakTimestamp(s)
	if err != nil {
		parsed, err = parseWeakTimestamp(s + " 00:00:00")
	}
	if err != nil {
		return time.Time{}, false
	}

	return toLocalTime(parsed)
}

// Layouts accepted for date strings: time-of-day and the zone suffix are
// optional, and a space is accepted in place of the "T" separator.
var weakTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseWeakTimestamp(s string) (time.Time, error) {
	var lastErr error

	for _, layout := range weakTimestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

var (
	durationStrRegexp  = regexp.MustCompile(`^([0-9]+[A-Za-zµ]+)+$`)
	durationUnitRegexp = regexp.MustCompile(`([0-9]+)([A-Za-zµ]+)`)

	// Spelled-out unit aliases mapped down to the single-letter units that
	// the duration parser understands.
	unitAliases = map[string]string{
		"sec":     "s",
		"secs":    "s",
		"second":  "s",
		"seconds": "s",
		"min":     "m",
		"mins":    "m",
		"minute":  "m",
		"minutes": "m",
		"hr":      "h",
		"hour":    "h",
		"hours":   "h",
		"day":     "d",
		"days":    "d",
		"week":    "w",
		"weeks":   "w",
		"month":   "M",
		"months":  "M",
		"year":    "y",
		"years":   "y",
	}
)

// parseDuration parses a sequence of <integer><unit> tokens. Spelled-out
// units ("30sec", "1min") are mapped down to their short forms, and each
// token is parsed on its own so that composites can mix day-or-larger units
// with smaller ones ("1d12h", "1w2d"), which the underlying parser only
// accepts one token at a time.
func parseDuration(s string) (time.Duration, bool) {
	if !durationStrRegexp.MatchString(s) {
		duration, err := gtime.ParseDuration(s)
		return duration, err == nil
	}

	var total time.Duration

	for _, groups := range durationUnitRegexp.FindAllStringSubmatch(s, -1) {
		unit := groups[2]
		if alias, ok := unitAliases[unit]; ok {
			unit = alias
		}

		duration, err := gtime.ParseDuration(groups[1] + unit)
		if err != nil {
			return 0, false
		}

		total += duration
	}

	return total, true
}

// toLocalTime takes the calendar fields of a UTC timestamp and reinterprets
// them as a wall-clock time in the local timezone. Resolution fails when the
// fields name a nonexistent local time (DST spring-forward gap) or an
// ambiguous one (fall-back overlap); we never guess which side of a
// transition the user meant.
func toLocalTime(t time.Time) (time.Time, bool) {
	return reinterpretIn(t, time.Local)
}

func reinterpretIn(t time.Time, loc *time.Location) (time.Time, bool) {
	t = t.UTC()

	resolved := time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		loc,
	)

	// time.Date normalizes times that fall in a DST gap, shifting the clock
	// fields. If the round trip doesn't preserve them, the time didn't exist.
	if !sameClockFields(resolved, t) {
		return time.Time{}, false
	}

	// During a fall-back overlap the same clock fields name two instants.
	// Probe the offsets a transition could have moved us by.
	for _, shift := range []time.Duration{
		-time.Hour, -30 * time.Minute, 30 * time.Minute, time.Hour,
	} {
		if sameClockFields(resolved.Add(shift), t) {
			return time.Time{}, false
		}
	}

	return resolved, true
}

func sameClockFields(a, b time.Time) bool {
	return a.Year() == b.Year() &&
		a.Month() == b.Month() &&
		a.Day() == b.Day() &&
		a.Hour() == b.Hour() &&
		a.Minute() == b.Minute() &&
		a.Second() == b.Second() &&
		a.Nanosecond() == b.Nanosecond()
}
