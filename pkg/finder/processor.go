package finder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/gosuri/uilive"
	log "github.com/sirupsen/logrus"
	"github.com/timefind/timefind/pkg/stats"
)

var (
	spinnerStates = spinner.CharSets[21]
)

// Processor is an interface that can process and summarize scanned entries.
type Processor interface {
	Process(context.Context, candidate) error
	Stop() error
	Summary() string
}

// LiveStatsConfig stores the inputs for a LiveStats processor.
type LiveStatsConfig struct {
	K          int
	Quiet      bool
	SortByName bool
}

// LiveStats is a processor that calculates and displays stats based on the
// stream of scanned entries.
type LiveStats struct {
	config   LiveStatsConfig
	stopChan chan struct{}
	wg       sync.WaitGroup

	topKCounter  *stats.TopKCounter
	entryCounter *stats.EntryCounter
	rateCounter  *stats.RateCounter
}

var _ Processor = (*LiveStats)(nil)

// NewLiveStats creates a new LiveStats instance and starts the main progress
// printing loop.
func NewLiveStats(config LiveStatsConfig) *LiveStats {
	l := &LiveStats{
		config:   config,
		stopChan: make(chan struct{}),
		wg:       sync.WaitGroup{},

		topKCounter:  stats.NewTopKCounter(config.K),
		entryCounter: stats.NewEntryCounter(),
		rateCounter:  stats.NewRateCounter(250*time.Millisecond, 5*time.Second),
	}

	l.wg.Add(1)
	go l.progressLoop()

	return l
}

// Process updates the stats in this LiveStats for a single entry.
func (l *LiveStats) Process(ctx context.Context, c candidate) error {
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("Got entry: path=%s root=%d size=%d modTime=%s matched=%t",
			c.entry.Path,
			c.entry.Root,
			c.entry.Size,
			c.entry.ModTime.Format(time.RFC3339),
			c.matched,
		)
	}

	l.rateCounter.Increment(time.Now(), 1)
	l.entryCounter.Update(c.entry.Root, c.entry.Size, c.entry.ModTime, c.matched)

	if !c.matched {
		log.Debug("Dropping entry due to time filters")
		return nil
	}

	l.topKCounter.Add(extensionKey(c.entry.Path), c.entry.Size)

	return nil
}

func extensionKey(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return stats.NoExtension
	}

	return ext
}

func (l *LiveStats) progressLoop() {
	var progressWriter *uilive.Writer
	var outputWriter io.Writer
	var ticker *time.Ticker

	if l.config.Quiet {
		// In print mode, don't output anything that will mess with
		// downstream consumers of the results
		outputWriter = io.Discard
		ticker = time.NewTicker(100 * time.Hour)
	} else if log.IsLevelEnabled(log.DebugLevel) {
		// The spinner really messes up frequent log output, so don't use it
		// in debug mode
		ticker = time.NewTicker(2 * time.Second)
		outputWriter = os.Stderr
	} else {
		progressWriter = uilive.New()
		// A really big time so that we can control the flushing manually
		progressWriter.RefreshInterval = 5000 * time.Hour
		progressWriter.Start()

		ticker = time.NewTicker(50 * time.Millisecond)
		outputWriter = progressWriter
	}

	spinnerIndex := 0

outerLoop:
	for {
		select {
		case <-l.stopChan:
			// Print one last update
			l.printProgress(outputWriter, spinnerIndex)
			break outerLoop
		case <-ticker.C:
			l.printProgress(outputWriter, spinnerIndex)
			if progressWriter != nil {
				progressWriter.Flush()
			}

			spinnerIndex++
			spinnerIndex = spinnerIndex % len(spinnerStates)
		}
	}

	ticker.Stop()
	if progressWriter != nil {
		progressWriter.Stop()
	}
	l.wg.Done()
}

func (l *LiveStats) printProgress(outputWriter io.Writer, spinnerIndex int) {
	topKSummary := l.topKCounter.Summary()
	entrySummary := l.entryCounter.Summary()

	fmt.Fprintf(
		outputWriter,
		strings.Join(
			[]string{
				fmt.Sprintf(
					"%s Scanning entries",
					spinnerStates[spinnerIndex],
				),
				fmt.Sprintf(
					"  %0.0f entries / sec",
					l.rateCounter.RatePerSec(),
				),
				fmt.Sprintf(
					"  %d entries total (%d roots, modified %s->%s)",
					entrySummary.TotalEntries,
					len(entrySummary.RootCounters),
					entrySummary.FirstModTime.Format(time.RFC3339),
					entrySummary.LastModTime.Format(time.RFC3339),
				),
				fmt.Sprintf(
					"  %d entries matched time filters",
					entrySummary.MatchedEntries,
				),
				fmt.Sprintf("  %d extensions seen", topKSummary.NumCategories),
				fmt.Sprintf(
					"  %d entries dropped due to category overflow\n",
					topKSummary.TotalRemoved,
				),
			},
			"\n",
		),
	)
}

// Stop stops this LiveStats instance.
func (l *LiveStats) Stop() error {
	l.stopChan <- struct{}{}
	l.wg.Wait()
	return nil
}

// Summary returns a pretty table summary of the stats calculated by this
// LiveStats instance.
func (l *LiveStats) Summary() string {
	return fmt.Sprintf(
		"Top extensions among matches (approximate):\n%s",
		l.topKCounter.PrettyTable(l.config.SortByName),
	)
}
