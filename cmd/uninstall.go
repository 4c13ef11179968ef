package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/followdiff/pkg/store"
	"github.com/urfave/cli/v3"
)

func uninstallCommand() *cli.Command {
	return &cli.Command{
		Name:   "uninstall",
		Usage:  "remove the followdiff store and its baseline",
		Action: uninstallAction,
	}
}

func uninstallAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()

	if len(args) > 0 {
		return fmt.Errorf("uninstall does not accept arguments")
	}

	s, err := store.DefaultStore()
	if err != nil {
		return err
	}

	if !s.IsInstalled() {
		return fmt.Errorf("followdiff is not installed")
	}

	if err := s.Uninstall(); err != nil {
		return err
	}
	fmt.Printf("uninstalled followdiff store from %s\n", s.Root)
	return nil
}
