package subcmd

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/timefind/timefind/pkg/filter"
	"github.com/timefind/timefind/pkg/finder"
)

type commonConfig struct {
	Debug      bool   `flag:"--debug"        help:"turn on debug logging" default:"false"`
	JSON       bool   `flag:"--json"         help:"print each match as a JSON object" default:"false"`
	K          int    `flag:"-k,--top-k"     help:"number of top extensions in the stats summary" default:"20"`
	Long       bool   `flag:"-l,--long"      help:"print mode, size, and mtime for each match" default:"false"`
	Newer      string `flag:"--newer"        help:"only match entries modified within this duration or since this date" default:"-"`
	Older      string `flag:"--older"        help:"only match entries last modified this duration or longer ago, or before this date" default:"-"`
	SortByName bool   `flag:"--sort-by-name" help:"sort the stats summary by extension instead of count" default:"false"`
	Stats      bool   `flag:"--stats"        help:"show live stats and a summary instead of printing matches" default:"false"`
}

func setLogLevel(config commonConfig) {
	if config.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// makeFilters converts the --newer and --older flag values into time filters
// anchored at the argument reference time (the scan start).
func makeFilters(
	refTime time.Time,
	config commonConfig,
) ([]filter.TimeFilter, error) {
	var err error

	filters := []filter.TimeFilter{}

	if config.Newer != "" {
		newerFilter, ok := filter.After(refTime, config.Newer)
		if ok {
			filters = append(filters, newerFilter)
		} else {
			err = multierror.Append(
				err,
				fmt.Errorf("invalid date or duration: %s", config.Newer),
			)
		}
	}

	if config.Older != "" {
		olderFilter, ok := filter.Before(refTime, config.Older)
		if ok {
			filters = append(filters, olderFilter)
		} else {
			err = multierror.Append(
				err,
				fmt.Errorf("invalid date or duration: %s", config.Older),
			)
		}
	}

	return filters, err
}

func makeProcessors(config commonConfig) []finder.Processor {
	processors := []finder.Processor{}

	if !config.Stats {
		processors = append(
			processors,
			finder.NewPrinter(
				finder.PrinterConfig{
					Long: config.Long,
					JSON: config.JSON,
				},
			),
		)
	}

	processors = append(
		processors,
		finder.NewLiveStats(
			finder.LiveStatsConfig{
				K:          config.K,
				Quiet:      !config.Stats,
				SortByName: config.SortByName,
			},
		),
	)

	return processors
}
