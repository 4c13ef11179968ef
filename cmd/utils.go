package cmd

import (
	"context"
	"strings"

	storepkg "github.com/olimci/followdiff/pkg/store"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func isVerbose(cmd *cli.Command) bool {
	if cmd == nil {
		return false
	}
	if cmd.Bool("verbose") {
		return true
	}
	root := cmd.Root()
	return root != nil && root.Bool("verbose")
}

func backendOverride(cmd *cli.Command) string {
	if cmd == nil {
		return ""
	}
	if backend := strings.TrimSpace(cmd.String("backend")); backend != "" {
		return backend
	}
	if root := cmd.Root(); root != nil {
		return strings.TrimSpace(root.String("backend"))
	}
	return ""
}

func openSession(ctx context.Context, cmd *cli.Command) (*storepkg.Session, error) {
	store, err := storepkg.DefaultStore()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, storepkg.OpenOptions{Backend: backendOverride(cmd)})
}

func closeSession(sess *storepkg.Session) {
	if err := sess.Close(); err != nil {
		log.WithError(err).Warn("error closing baseline storage")
	}
}

// showLinks reports whether profile URLs should be printed, from the flag
// when set and the config otherwise.
func showLinks(cmd *cli.Command, sess *storepkg.Session) bool {
	if cmd.IsSet("links") {
		return cmd.Bool("links")
	}
	return sess.Config.Options.Links
}
