package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntryCounter(t *testing.T) {
	counter := NewEntryCounter()

	counter.Update(2, 1024, time.Unix(900, 0), true)
	counter.Update(3, 2048, time.Unix(1000, 0), true)
	counter.Update(3, 512, time.Unix(1100, 0), false)

	summary := counter.Summary()
	assert.Equal(t, int64(3), summary.TotalEntries)
	assert.Equal(t, int64(2), summary.MatchedEntries)
	assert.Equal(t, time.Unix(900, 0), summary.FirstModTime)
	assert.Equal(t, time.Unix(1100, 0), summary.LastModTime)

	root3Counter := summary.RootCounters[3]
	assert.Equal(
		t,
		RootCounter{
			RootID:         3,
			TotalEntries:   2,
			MatchedEntries: 1,
			TotalBytes:     2560,
			FirstModTime:   time.Unix(1000, 0),
			LastModTime:    time.Unix(1100, 0),
		},
		root3Counter,
	)
}
