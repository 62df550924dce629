package finder

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	sjson "github.com/segmentio/encoding/json"
)

// PrinterConfig stores the inputs for a Printer processor.
type PrinterConfig struct {
	Long bool
	JSON bool

	// Out defaults to stdout when nil.
	Out io.Writer
}

// Printer is a processor that prints each matching entry, one per line.
type Printer struct {
	config PrinterConfig
	out    io.Writer

	mutex   sync.Mutex
	printed int64
}

var _ Processor = (*Printer)(nil)

// NewPrinter creates a new Printer instance.
func NewPrinter(config PrinterConfig) *Printer {
	out := config.Out
	if out == nil {
		out = os.Stdout
	}

	return &Printer{
		config: config,
		out:    out,
	}
}

type jsonEntry struct {
	Path    string    `json:"path"`
	Root    int       `json:"root"`
	Size    int64     `json:"size"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"modTime"`
}

// Process prints a single entry if it matched the time filters.
func (p *Printer) Process(ctx context.Context, c candidate) error {
	if !c.matched {
		return nil
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.printed++

	if p.config.JSON {
		output, err := sjson.Marshal(
			jsonEntry{
				Path:    c.entry.Path,
				Root:    c.entry.Root,
				Size:    c.entry.Size,
				Mode:    c.entry.Mode.String(),
				ModTime: c.entry.ModTime,
			},
		)
		if err != nil {
			return err
		}

		fmt.Fprintln(p.out, string(output))
		return nil
	}

	if p.config.Long {
		fmt.Fprintf(
			p.out,
			"%s %12d %s %s\n",
			c.entry.Mode,
			c.entry.Size,
			c.entry.ModTime.Format("2006-01-02 15:04:05"),
			c.entry.Path,
		)
		return nil
	}

	fmt.Fprintln(p.out, c.entry.Path)
	return nil
}

// Stop stops this Printer instance.
func (p *Printer) Stop() error {
	return nil
}

// Summary returns a count of the entries printed.
func (p *Printer) Summary() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return fmt.Sprintf("%d entries printed", p.printed)
}
