package stats

import (
	"sync"
	"time"
)

// RateCounter is a counter that records the approximate number of entries
// scanned over a recent interval; the length of this interval and the
// resolution are configurable. Used to measure the approximate scan rate for
// the progress view.
type RateCounter struct {
	sync.Mutex

	headIncrement int64
	resolution    time.Duration
	length        time.Duration
	maxSize       int
	buckets       []int64
	currTotal     int64
}

// NewRateCounter creates a new RateCounter instance for the given resolution
// and length.
func NewRateCounter(
	resolution time.Duration,
	length time.Duration,
) *RateCounter {
	return &RateCounter{
		resolution: resolution,
		length:     length,
		maxSize:    int(length / resolution),
		buckets:    []int64{},
	}
}

// Increment updates the counter for the argument count, assuming that the
// current time is now.
func (r *RateCounter) Increment(now time.Time, count int64) {
	r.Lock()
	defer r.Unlock()

	if r.headIncrement == 0 {
		r.headIncrement = now.UnixNano() / int64(r.resolution)
		r.buckets = []int64{count}
		r.currTotal = count
		return
	}

	r.advance(now)
	r.buckets[0] += count
	r.currTotal += count
}

// Total gets the total count for this counter.
func (r *RateCounter) Total() int64 {
	r.Lock()
	defer r.Unlock()

	return r.currTotal
}

// RatePerSec returns the average count per second for this counter.
func (r *RateCounter) RatePerSec() float64 {
	r.Lock()
	defer r.Unlock()

	return float64(r.currTotal) / r.length.Seconds()
}

func (r *RateCounter) advance(now time.Time) {
	newHead := now.UnixNano() / int64(r.resolution)
	if newHead == r.headIncrement {
		// Nothing to do
		return
	}

	r.buckets = append(
		make([]int64, newHead-r.headIncrement),
		r.buckets...,
	)

	if len(r.buckets) > r.maxSize {
		for i := r.maxSize; i < len(r.buckets); i++ {
			r.currTotal -= r.buckets[i]
		}

		r.buckets = r.buckets[0:r.maxSize]
	}

	r.headIncrement = newHead
}
