package cmd

import (
	"context"
	"fmt"

	storepkg "github.com/olimci/followdiff/pkg/store"
	"github.com/urfave/cli/v3"
)

func installCommand() *cli.Command {
	return &cli.Command{
		Name:   "install",
		Usage:  "initialize followdiff",
		Action: installAction,
	}
}

func installAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()

	if len(args) > 0 {
		return fmt.Errorf("install does not accept arguments")
	}

	store, err := storepkg.DefaultStore()
	if err != nil {
		return err
	}

	if store.IsInstalled() {
		return fmt.Errorf("followdiff is already installed in %s", store.Root)
	}

	if err := store.Install(); err != nil {
		return err
	}

	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("initialized followdiff store in %s\n", store.Root)
	fmt.Printf("  config   %s\n", store.ConfigPath())
	fmt.Printf("  backend  %s (data in %s)\n", cfg.Storage.Backend, store.DataPath())
	return nil
}
