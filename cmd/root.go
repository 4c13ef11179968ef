package cmd

import (
	"context"
	"os"

	"github.com/olimci/followdiff/pkg/version"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// Commands:
// install
//   initialises the store (config.toml and the data directory)
//
// compare <archive.zip>:
//   reads an account export and compares it with the stored baseline
//   - the first export becomes the baseline when auto_baseline is on
//   - --save replaces the baseline with this export afterwards
//
// baseline show|save|clear
//   inspects or replaces the stored baseline
//
// status
//   shows the store, its backend and the baseline age
//
// uninstall
//   removes the store from the machine

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "followdiff",
		Usage:   "compare instagram follower exports over time",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show debug logging",
			},
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "override the configured baseline storage (file, bitcask, sqlite, memory)",
				Sources: cli.EnvVars("FOLLOWDIFF_BACKEND"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureLogging(cmd)
			return ctx, nil
		},
		Commands: []*cli.Command{
			installCommand(),
			compareCommand(),
			baselineCommand(),
			statusCommand(),
			uninstallCommand(),
			versionCommand(),
		},
	}

	return app.Run(ctx, args)
}

func configureLogging(cmd *cli.Command) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if isVerbose(cmd) {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}
