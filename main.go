package main

import (
	"context"
	"fmt"
	"os"

	"github.com/olimci/followdiff/cmd"
	"github.com/olimci/followdiff/pkg/tracker"
)

func main() {
	if err := cmd.Execute(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", tracker.Message(err))
		os.Exit(1)
	}
}
