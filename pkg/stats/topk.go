package stats

import (
	"bytes"
	"container/heap"
	"fmt"
	"sort"
	"sync"

	"github.com/olekukonko/tablewriter"
)

const (
	// NoExtension is a special bucket key for entries without an extension.
	NoExtension = "(none)"
)

// TopKCounter keeps approximate stats on the top K entry categories seen so
// far. It uses a BucketsHeap behind the scenes to do this in a
// memory-efficient way, so very deep scans don't accumulate a bucket per
// distinct extension forever.
type TopKCounter struct {
	sync.Mutex

	k            int
	bucketsHeap  *BucketsHeap
	bucketsMap   map[string]*Bucket
	totalAdded   int
	totalRemoved int
}

// TopKCounterSummary is a summary of the current top K state. It's used for
// the progress display while a scan is running.
type TopKCounterSummary struct {
	TotalAdded    int
	TotalRemoved  int
	NumCategories int
}

// NewTopKCounter creates a new TopKCounter instance for the argument k value.
func NewTopKCounter(k int) *TopKCounter {
	counter := &TopKCounter{
		k:           k,
		bucketsHeap: &BucketsHeap{},
		bucketsMap:  map[string]*Bucket{},
	}

	heap.Init(counter.bucketsHeap)
	return counter
}

// Add updates the counter state for the argument key and entry size. If the
// key is not currently in the heap, then a bucket is created for it.
func (t *TopKCounter) Add(key string, sizeBytes int64) {
	t.Mutex.Lock()
	defer t.Mutex.Unlock()

	t.totalAdded++

	bucket, ok := t.bucketsMap[key]
	if !ok {
		newBucket := NewBucket(key, sizeBytes)
		t.bucketsMap[key] = newBucket

		heap.Push(
			t.bucketsHeap,
			newBucket,
		)
	} else {
		bucket.Update(sizeBytes)
		heap.Fix(t.bucketsHeap, bucket.Index)
	}

	// Clean down to 100k instead of k so that we can get a better
	// approximation of the true counts
	if len(*t.bucketsHeap) > 200*t.k {
		t.Clean(100 * t.k)
	}
}

// Clean removes items from the heap to get the size down to the argument limit.
func (t *TopKCounter) Clean(limit int) {
	if len(*t.bucketsHeap) < limit {
		return
	}

	for i := 0; i < len(*t.bucketsHeap)-limit; i++ {
		bucket := heap.Remove(t.bucketsHeap, len(*t.bucketsHeap)-1).(*Bucket)

		t.totalRemoved += bucket.Count
		delete(t.bucketsMap, bucket.Key)
	}
}

// Buckets returns the buckets currently in the heap, sorted by count and key.
func (t *TopKCounter) Buckets(limit int, sortByName bool) []Bucket {
	t.Mutex.Lock()
	defer t.Mutex.Unlock()

	buckets := []Bucket{}

	for _, bucket := range *t.bucketsHeap {
		buckets = append(buckets, *bucket)
	}

	sort.Slice(buckets, func(a, b int) bool {
		return buckets[a].Count > buckets[b].Count ||
			(buckets[a].Count == buckets[b].Count && buckets[a].Key < buckets[b].Key)
	})

	if len(buckets) > limit {
		buckets = buckets[0:limit]
	}

	if sortByName {
		// Do this sort after the count sort so we still get the top k by count
		sort.Slice(buckets, func(a, b int) bool {
			return buckets[a].Key < buckets[b].Key
		})
	}

	return buckets
}

// Summary returns a summary of the current state of this counter instance.
func (t *TopKCounter) Summary() TopKCounterSummary {
	t.Mutex.Lock()
	defer t.Mutex.Unlock()

	return TopKCounterSummary{
		TotalAdded:    t.totalAdded,
		TotalRemoved:  t.totalRemoved,
		NumCategories: len(t.bucketsMap),
	}
}

// PrettyTable returns a pretty table that summarizes the stats for the top k
// categories in this counter instance.
func (t *TopKCounter) PrettyTable(sortByName bool) string {
	buf := &bytes.Buffer{}

	table := tablewriter.NewWriter(buf)
	table.SetHeader(
		[]string{
			"Rank",
			"Extension",
			"Count",
			"Min Bytes",
			"Avg Bytes",
			"Max Bytes",
			"Percent",
			"Cumulative",
		},
	)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment(
		[]int{
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT,
		},
	)
	table.SetBorders(
		tablewriter.Border{
			Left:   false,
			Top:    true,
			Right:  false,
			Bottom: true,
		},
	)

	cumlPercent := 0.0

	buckets := t.Buckets(t.k, sortByName)
	for i, bucket := range buckets {
		percent := float64(bucket.Count) / float64(t.totalAdded-t.totalRemoved) * 100.0
		cumlPercent += percent

		table.Append(
			[]string{
				fmt.Sprintf("%d", i+1),
				bucket.Key,
				fmt.Sprintf("%d", bucket.Count),
				fmt.Sprintf("%d", bucket.MinBytes),
				fmt.Sprintf("%0.1f", bucket.AvgBytes()),
				fmt.Sprintf("%d", bucket.MaxBytes),
				fmt.Sprintf("%0.2f%%", percent),
				fmt.Sprintf("%0.2f%%", cumlPercent),
			},
		)
	}

	table.Render()
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
