package finder

import (
	"context"
	"io/fs"
	"time"
)

// Entry describes a single candidate found during a scan: a local file or a
// remote object, together with the timestamp the time filters are evaluated
// against.
type Entry struct {
	// Path is the file path or object key.
	Path string

	// Root is the index of the scan root (path or prefix) that produced
	// this entry.
	Root int

	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// candidate wraps an entry with the outcome of the time filter evaluation.
type candidate struct {
	entry   Entry
	matched bool
}

// Scanner is an interface for types that scan a source for candidate entries
// and feed them into a channel for downstream filtering and processing.
type Scanner interface {
	Run(ctx context.Context, entryChan chan Entry) error
}
