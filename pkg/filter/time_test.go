package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFilterAppliesTo(t *testing.T) {
	refTime, ok := toLocalTime(time.Date(2010, 10, 10, 10, 10, 10, 0, time.UTC))
	require.True(t, ok)

	afterFilter, ok := After(refTime, "1min")
	require.True(t, ok)
	assert.True(t, afterFilter.AppliesTo(refTime))

	beforeFilter, ok := Before(refTime, "1min")
	require.True(t, ok)
	assert.False(t, beforeFilter.AppliesTo(refTime))

	t1mAgo := refTime.Add(-time.Minute)

	afterFilter, ok = After(refTime, "30sec")
	require.True(t, ok)
	assert.False(t, afterFilter.AppliesTo(t1mAgo))

	afterFilter, ok = After(refTime, "2min")
	require.True(t, ok)
	assert.True(t, afterFilter.AppliesTo(t1mAgo))

	beforeFilter, ok = Before(refTime, "30sec")
	require.True(t, ok)
	assert.True(t, beforeFilter.AppliesTo(t1mAgo))

	beforeFilter, ok = Before(refTime, "2min")
	require.True(t, ok)
	assert.False(t, beforeFilter.AppliesTo(t1mAgo))

	// 10 seconds before refTime, written out as a local date
	t10sBefore := "2010-10-10 10:10:00"

	beforeFilter, ok = Before(refTime, t10sBefore)
	require.True(t, ok)
	assert.False(t, beforeFilter.AppliesTo(refTime))
	assert.True(t, beforeFilter.AppliesTo(t1mAgo))

	afterFilter, ok = After(refTime, t10sBefore)
	require.True(t, ok)
	assert.True(t, afterFilter.AppliesTo(refTime))
	assert.False(t, afterFilter.AppliesTo(t1mAgo))
}

func TestTimeFilterBoundaryInclusive(t *testing.T) {
	refTime := time.Date(2020, 10, 28, 20, 30, 5, 0, time.UTC)
	limit := refTime.Add(-time.Minute)

	afterFilter, ok := After(refTime, "1min")
	require.True(t, ok)
	beforeFilter, ok := Before(refTime, "1min")
	require.True(t, ok)

	// Both variants include the limit itself
	assert.True(t, afterFilter.AppliesTo(limit))
	assert.True(t, beforeFilter.AppliesTo(limit))

	assert.True(t, afterFilter.AppliesTo(limit.Add(time.Nanosecond)))
	assert.False(t, afterFilter.AppliesTo(limit.Add(-time.Nanosecond)))
	assert.False(t, beforeFilter.AppliesTo(limit.Add(time.Nanosecond)))
	assert.True(t, beforeFilter.AppliesTo(limit.Add(-time.Nanosecond)))
}

func TestTimeFilterDurationMonotonicity(t *testing.T) {
	refTime := time.Date(2020, 10, 28, 20, 30, 5, 0, time.UTC)

	durations := []string{"30sec", "1min", "2min", "1h", "1h30m", "1d", "1w"}
	var prev time.Time

	for i, duration := range durations {
		f, ok := After(refTime, duration)
		require.True(t, ok, "duration %s should parse", duration)

		if i > 0 {
			// A larger duration means an earlier limit, so everything the
			// smaller filter admits is admitted by the larger one too
			assert.True(t, f.limit.Before(prev), "limit for %s", duration)
			assert.True(t, f.AppliesTo(prev))
		}
		prev = f.limit
	}
}

func TestTimeFilterParse(t *testing.T) {
	refTime := time.Date(2020, 10, 28, 20, 30, 5, 0, time.UTC)

	type testCase struct {
		input    string
		expected time.Time
	}

	testCases := []testCase{
		{
			input:    "30sec",
			expected: refTime.Add(-30 * time.Second),
		},
		{
			input:    "1min",
			expected: refTime.Add(-time.Minute),
		},
		{
			input:    "2h",
			expected: refTime.Add(-2 * time.Hour),
		},
		{
			input:    "1h30m",
			expected: refTime.Add(-90 * time.Minute),
		},
		{
			input:    "2d",
			expected: refTime.Add(-48 * time.Hour),
		},
		{
			input:    "1w",
			expected: refTime.Add(-7 * 24 * time.Hour),
		},
		{
			input:    "1d12h",
			expected: refTime.Add(-36 * time.Hour),
		},
		{
			input:    "1w2d",
			expected: refTime.Add(-9 * 24 * time.Hour),
		},
		{
			input:    "0s",
			expected: refTime,
		},
		{
			input: "2010-10-10 10:10:10",
			expected: time.Date(
				2010, 10, 10, 10, 10, 10, 0, time.Local,
			),
		},
		{
			input: "2010-10-10T10:10:10",
			expected: time.Date(
				2010, 10, 10, 10, 10, 10, 0, time.Local,
			),
		},
		{
			input: "2010-10-10T10:10:10Z",
			expected: time.Date(
				2010, 10, 10, 10, 10, 10, 0, time.Local,
			),
		},
		{
			input: "2010-10-10",
			expected: time.Date(
				2010, 10, 10, 0, 0, 0, 0, time.Local,
			),
		},
	}

	for _, tc := range testCases {
		limit, ok := parseLimit(refTime, tc.input)
		require.True(t, ok, "input %q should parse", tc.input)
		assert.True(
			t,
			limit.Equal(tc.expected),
			"input %q: expected %s, got %s",
			tc.input,
			tc.expected,
			limit,
		)
	}
}

func TestTimeFilterInvalidInputs(t *testing.T) {
	refTime := time.Date(2020, 10, 28, 20, 30, 5, 0, time.UTC)

	invalidInputs := []string{
		"",
		"not-a-time",
		"10",
		"10-10-2010",
		"1 hour ago",
		"2010-10-10x",
	}

	for _, input := range invalidInputs {
		_, ok := Before(refTime, input)
		assert.False(t, ok, "Before should reject %q", input)

		_, ok = After(refTime, input)
		assert.False(t, ok, "After should reject %q", input)
	}
}

func TestToLocalTimeRoundTrip(t *testing.T) {
	// Reinterpreting the fields of a UTC timestamp must produce the same
	// instant as constructing those fields in local time directly
	utc := time.Date(2010, 10, 10, 10, 10, 10, 0, time.UTC)

	localized, ok := toLocalTime(utc)
	require.True(t, ok)

	direct := time.Date(2010, 10, 10, 10, 10, 10, 0, time.Local)
	assert.True(t, localized.Equal(direct))

	// And the reinterpretation is stable under repetition in UTC
	again, ok := reinterpretIn(utc, time.UTC)
	require.True(t, ok)
	assert.True(t, again.Equal(utc))
}

func TestReinterpretDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2021-03-14 02:30 never happened in New York (spring-forward gap)
	_, ok := reinterpretIn(
		time.Date(2021, 3, 14, 2, 30, 0, 0, time.UTC),
		loc,
	)
	assert.False(t, ok)

	// 2021-11-07 01:30 happened twice (fall-back overlap)
	_, ok = reinterpretIn(
		time.Date(2021, 11, 7, 1, 30, 0, 0, time.UTC),
		loc,
	)
	assert.False(t, ok)

	// An ordinary time resolves fine
	resolved, ok := reinterpretIn(
		time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
		loc,
	)
	require.True(t, ok)
	assert.True(t, resolved.Equal(time.Date(2021, 6, 1, 12, 0, 0, 0, loc)))
}

func TestParseDuration(t *testing.T) {
	// The duration parser uses average-length months and years rather than
	// calendar arithmetic
	year := time.Duration(365.25 * 24 * float64(time.Hour))
	month := year / 12

	testCases := map[string]time.Duration{
		"30sec":   30 * time.Second,
		"1min":    time.Minute,
		"2hours":  2 * time.Hour,
		"1h30m":   90 * time.Minute,
		"10days":  10 * 24 * time.Hour,
		"2weeks":  2 * 7 * 24 * time.Hour,
		"1d12h":   36 * time.Hour,
		"1w2d":    9 * 24 * time.Hour,
		"2d1min":  48*time.Hour + time.Minute,
		"1M":      month,
		"3months": 3 * month,
		"1year":   year,
	}

	for input, expected := range testCases {
		duration, ok := parseDuration(input)
		assert.True(t, ok, "input %q should parse", input)
		assert.Equal(t, expected, duration, "input %q", input)
	}

	invalidInputs := []string{
		"",
		"2010-10-10",
		"2010-10-10 10:10:10",
		"not-a-time",
		"1x2h",
	}

	for _, input := range invalidInputs {
		_, ok := parseDuration(input)
		assert.False(t, ok, "input %q should not parse", input)
	}
}
