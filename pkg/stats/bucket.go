package stats

// Bucket accumulates the count and byte-size statistics for a single
// category of entries, e.g. all files sharing an extension.
type Bucket struct {
	Key   string
	Count int
	Index int

	// Byte sizes of the entries in this bucket
	MinBytes   int64
	MaxBytes   int64
	TotalBytes int64
}

// NewBucket creates a new Bucket instance for the argument key and size.
func NewBucket(key string, sizeBytes int64) *Bucket {
	return &Bucket{
		Key:        key,
		Count:      1,
		MinBytes:   sizeBytes,
		MaxBytes:   sizeBytes,
		TotalBytes: sizeBytes,
	}
}

// Update folds another entry of the argument size into this bucket.
func (b *Bucket) Update(sizeBytes int64) {
	b.Count++
	b.TotalBytes += sizeBytes
	if sizeBytes < b.MinBytes {
		b.MinBytes = sizeBytes
	}
	if sizeBytes > b.MaxBytes {
		b.MaxBytes = sizeBytes
	}
}

// AvgBytes returns the average entry size in this bucket.
func (b *Bucket) AvgBytes() float64 {
	return float64(b.TotalBytes) / float64(b.Count)
}
