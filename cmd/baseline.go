package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/followdiff/pkg/tracker"
	"github.com/urfave/cli/v3"
)

func baselineCommand() *cli.Command {
	return &cli.Command{
		Name:  "baseline",
		Usage: "inspect or replace the stored baseline",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "show the stored baseline",
				Action: baselineShowAction,
			},
			{
				Name:      "save",
				Usage:     "save an export as the new baseline",
				ArgsUsage: "<archive.zip>",
				Action:    baselineSaveAction,
			},
			{
				Name:   "clear",
				Usage:  "delete the stored baseline",
				Action: baselineClearAction,
			},
		},
	}
}

func baselineShowAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return fmt.Errorf("baseline show does not accept arguments")
	}

	sess, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSession(sess)

	snap, ok := sess.Baseline(ctx)
	if !ok {
		fmt.Println("No baseline saved")
		return nil
	}
	renderSnapshot(snap)
	return nil
}

func baselineSaveAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("baseline save requires exactly one archive")
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
	if res.Diff == nil {
		return fmt.Errorf("%s: %w", res.ArchiveName, tracker.ErrMissingExpectedFiles)
	}

	snap, err := sess.SaveBaseline(ctx)
	if err != nil {
		return err
	}

	if msg, ok := sess.Status(); ok {
		fmt.Println(statusStyle.Render(msg))
	}
	renderSnapshot(snap)
	return nil
}

func baselineClearAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return fmt.Errorf("baseline clear does not accept arguments")
	}

	sess, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSession(sess)

	if err := sess.ClearBaseline(ctx); err != nil {
		return err
	}
	if msg, ok := sess.Status(); ok {
		fmt.Println(statusStyle.Render(msg))
	}
	return nil
}
