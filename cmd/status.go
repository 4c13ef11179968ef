package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	storepkg "github.com/olimci/followdiff/pkg/store"
	"github.com/urfave/cli/v3"
)

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "show the store and its baseline",
		Action: statusAction,
	}
}

func statusAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 0 {
		return fmt.Errorf("status does not accept arguments")
	}

	store, err := storepkg.DefaultStore()
	if err != nil {
		return err
	}
	if !store.IsInstalled() {
		return fmt.Errorf("followdiff is not installed")
	}

	snapshot, err := store.Status(ctx, storepkg.OpenOptions{Backend: backendOverride(cmd)})
	if err != nil {
		return err
	}

	fmt.Printf("Store %s\n", snapshot.Root)
	fmt.Printf("Backend: %s\n", snapshot.Backend)

	fmt.Println()
	if snapshot.Baseline == nil {
		fmt.Println("No baseline saved")
		return nil
	}

	b := snapshot.Baseline
	if b.CapturedAt.IsZero() {
		fmt.Println("Baseline saved at an unknown time")
	} else {
		fmt.Printf("Baseline captured %s\n", humanize.Time(b.CapturedAt))
	}
	fmt.Printf("  followers  %s\n", humanize.Comma(int64(b.FollowerCount)))
	fmt.Printf("  following  %s\n", humanize.Comma(int64(b.FollowingCount)))
	if b.Archive != "" {
		fmt.Printf("  archive    %s\n", b.Archive)
	}
	return nil
}
