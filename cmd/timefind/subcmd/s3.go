package subcmd

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/segmentio/cli"
	log "github.com/sirupsen/logrus"
	"github.com/timefind/timefind/pkg/finder"
)

type s3Config struct {
	commonConfig

	Bucket     string `flag:"-b,--bucket"   help:"s3 bucket"`
	NumWorkers int    `flag:"--num-workers" help:"number of prefixes to list in parallel" default:"4"`
	Prefixes   string `flag:"--prefixes"    help:"comma-separated list of prefixes"`
}

// S3Cmd defines a CLI function for searching the objects in an S3 bucket.
func S3Cmd(ctx context.Context) cli.Function {
	return cli.Command(
		func(config s3Config) {
			setLogLevel(config.commonConfig)

			filters, err := makeFilters(time.Now(), config.commonConfig)
			if err != nil {
				log.Fatalf("Config not valid: %+v", err)
			}

			processors := makeProcessors(config.commonConfig)

			sess := session.Must(session.NewSession())
			s3Client := s3.New(sess)

			f := &finder.Finder{
				Source: &finder.S3Scanner{
					S3Client:   s3Client,
					Bucket:     config.Bucket,
					Prefixes:   strings.Split(config.Prefixes, ","),
					NumWorkers: config.NumWorkers,
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
