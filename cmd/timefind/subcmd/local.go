package subcmd

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/cli"
	log "github.com/sirupsen/logrus"
	"github.com/timefind/timefind/pkg/finder"
	"github.com/timefind/timefind/pkg/util"
)

type localConfig struct {
	commonConfig

	Depths    string `flag:"--depths"   help:"only visit entries at these depths below each root, e.g. \"2\" or \"1-3\"" default:"-"`
	Paths     string `flag:"-p,--paths" help:"comma-separated list of paths to scan"`
	Recursive bool   `flag:"-r,--recursive" help:"scan subdirectories recursively" default:"false"`
}

// LocalCmd defines a CLI function for searching local filesystem paths.
func LocalCmd(ctx context.Context) cli.Function {
	return cli.Command(
		func(config localConfig) {
			setLogLevel(config.commonConfig)

			filters, err := makeFilters(time.Now(), config.commonConfig)
			if err != nil {
				log.Fatalf("Config not valid: %+v", err)
			}

			depths, err := util.ParseDepthStr(config.Depths)
			if err != nil {
				log.Fatalf("Config not valid: %+v", err)
			}

			processors := makeProcessors(config.commonConfig)

			f := &finder.Finder{
				Source: &finder.LocalScanner{
					Paths:     strings.Split(config.Paths, ","),
					Recursive: config.Recursive,
					Depths:    depths,
				},
				Filters:    filters,
				Processors: processors,
			}

			if config.Stats {
				log.Infof(
					"Starting scan; press control-c to stop and print out summary",
				)
			}

			if err := f.Run(ctx); err != nil && ctx.Err() == nil {
				log.Fatalf("Error running finder: %v", err)
			}

			for _, processor := range processors {
				processor.Stop()
			}

			if config.Stats {
				for _, processor := range processors {
					log.Infof("Scan summary:\n%s", processor.Summary())
				}
			}
		},
	)
}
