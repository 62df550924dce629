package subcmd

import (
	"context"
	"fmt"

	"github.com/segmentio/cli"
	"github.com/timefind/timefind/pkg/version"
)

type versionConfig struct{}

// VersionCmd defines a CLI function that prints the current version.
func VersionCmd(ctx context.Context) cli.Function {
	return cli.Command(
		func(config versionConfig) {
			fmt.Printf("timefind version v%s\n", version.Version)
		},
	)
}
