package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Aliases:   []string{"upload"},
		Usage:     "compare an instagram export with the stored baseline",
		ArgsUsage: "<archive.zip>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "save",
				Usage: "save this export as the new baseline afterwards",
			},
			&cli.BoolFlag{
				Name:  "links",
				Usage: "show profile links",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the result as JSON",
			},
		},
		Action: compareAction,
	}
}

func compareAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("compare requires exactly one archive")
	}

	sess, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSession(sess)

	res, err := sess.CompareFile(ctx, args[0])
	if err != nil {
		return err
	}

	if cmd.Bool("save") && !res.AutoSaved {
		if _, err := sess.SaveBaseline(ctx); err != nil {
			log.WithError(err).Warn("baseline not saved")
		}
		if msg, ok := sess.Status(); ok {
			res.Status = msg
		}
	}

	if cmd.Bool("json") {
		return printJSON(res)
	}

	renderResult(res, showLinks(cmd, sess))
	return nil
}
