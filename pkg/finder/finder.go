package finder

import (
	"context"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/timefind/timefind/pkg/filter"
)

// Finder is a struct that scans a source for entries and filters them by
// timestamp.
type Finder struct {
	Source     Scanner
	Filters    []filter.TimeFilter
	Processors []Processor
}

// Run runs the finder with the provided context. Every entry's timestamp is
// checked against all filters; the entry and its match outcome are then
// handed to each processor. The function returns when the source has been
// fully scanned and every entry processed, a fatal error is encountered, or
// the context is cancelled. Processor summaries are exact once Run returns.
func (f *Finder) Run(ctx context.Context) error {
	entryChan := make(chan Entry)
	errChan := make(chan error, 1)
	go func() {
		errChan <- f.Source.Run(ctx, entryChan)
		close(entryChan)
	}()

	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range entryChan {
				c := candidate{
					entry:   entry,
					matched: f.matches(entry),
				}
				for _, p := range f.Processors {
					if err := p.Process(ctx, c); err != nil {
						log.Warnf("Failed to process entry: %v", err)
					}
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return <-errChan
}

func (f *Finder) matches(entry Entry) bool {
	for _, timeFilter := range f.Filters {
		if !timeFilter.AppliesTo(entry.ModTime) {
			return false
		}
	}

	return true
}
