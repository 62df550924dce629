package stats

import (
	"sync"
	"time"
)

// EntryCounter stores counts by scan root (a local path or an S3 prefix).
// It's used by the scan stats progress view.
type EntryCounter struct {
	sync.Mutex

	totalEntries   int64
	matchedEntries int64
	rootCounters   map[int]*RootCounter
}

// EntryCounterSummary stores a summary of the entry counts seen so far.
type EntryCounterSummary struct {
	TotalEntries   int64
	MatchedEntries int64
	FirstModTime   time.Time
	LastModTime    time.Time
	RootCounters   map[int]RootCounter
}

// RootCounter stores detailed stats about the entries seen so far under a
// specific scan root.
type RootCounter struct {
	RootID         int
	TotalEntries   int64
	MatchedEntries int64
	TotalBytes     int64
	FirstModTime   time.Time
	LastModTime    time.Time
}

// NewEntryCounter returns a new EntryCounter instance.
func NewEntryCounter() *EntryCounter {
	return &EntryCounter{
		rootCounters: map[int]*RootCounter{},
	}
}

// Update updates the counter for an entry under the argument root. The
// matched flag records whether the entry survived the time filters.
func (e *EntryCounter) Update(root int, sizeBytes int64, modTime time.Time, matched bool) {
	e.Mutex.Lock()
	defer e.Mutex.Unlock()

	e.totalEntries++

	if matched {
		e.matchedEntries++
	}

	counter, ok := e.rootCounters[root]
	if !ok {
		counter = &RootCounter{
			RootID:       root,
			TotalEntries: 1,
			TotalBytes:   sizeBytes,
			FirstModTime: modTime,
			LastModTime:  modTime,
		}
		if matched {
			counter.MatchedEntries = 1
		}
		e.rootCounters[root] = counter
		return
	}

	counter.TotalEntries++
	counter.TotalBytes += sizeBytes
	if matched {
		counter.MatchedEntries++
	}

	if counter.FirstModTime.IsZero() || modTime.Before(counter.FirstModTime) {
		counter.FirstModTime = modTime
	}
	if counter.LastModTime.IsZero() || modTime.After(counter.LastModTime) {
		counter.LastModTime = modTime
	}
}

// Summary returns an EntryCounterSummary instance based on the stats
// recorded thus far for this counter.
func (e *EntryCounter) Summary() EntryCounterSummary {
	e.Mutex.Lock()
	defer e.Mutex.Unlock()

	summary := EntryCounterSummary{
		TotalEntries:   e.totalEntries,
		MatchedEntries: e.matchedEntries,
		RootCounters:   map[int]RootCounter{},
	}

	for root, rootCounter := range e.rootCounters {
		summary.RootCounters[root] = *rootCounter

		if summary.FirstModTime.IsZero() || rootCounter.FirstModTime.Before(summary.FirstModTime) {
			summary.FirstModTime = rootCounter.FirstModTime
		}
		if summary.LastModTime.IsZero() || rootCounter.LastModTime.After(summary.LastModTime) {
			summary.LastModTime = rootCounter.LastModTime
		}
	}

	return summary
}
