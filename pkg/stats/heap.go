package stats

// BucketsHeap is a heap.Interface implementation that keeps the most
// populous buckets at the top.
// Based on example in https://golang.org/pkg/container/heap/#example__priorityQueue.
type BucketsHeap []*Bucket

// Len returns the number of buckets in the heap.
func (h BucketsHeap) Len() int { return len(h) }

// Less returns whether the ith element in the heap is less than the jth one.
func (h BucketsHeap) Less(i, j int) bool {
	return h[i].Count > h[j].Count ||
		(h[i].Count == h[j].Count && h[i].Key < h[j].Key)
}

// Swap swaps the ith and jth elements and updates the indices for each.
func (h BucketsHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

// Push adds a new bucket to the heap.
func (h *BucketsHeap) Push(x interface{}) {
	n := len(*h)
	bucket := x.(*Bucket)
	bucket.Index = n
	*h = append(*h, bucket)
}

// Pop removes the smallest bucket from the heap.
func (h *BucketsHeap) Pop() interface{} {
	old := *h
	n := len(old)
	bucket := old[n-1]
	old[n-1] = nil
	bucket.Index = -1
	*h = old[0 : n-1]
	return bucket
}
