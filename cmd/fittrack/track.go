// track.go implements the interactive tracking session.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/Brati10/fitness-tracker/internal/cli"
	"github.com/Brati10/fitness-tracker/internal/outbox"
	"github.com/Brati10/fitness-tracker/internal/session"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Start an interactive tracking session",
	Long: `Open the interactive tracker. Inside the session, type 'help' for
the command list. Any workouts spooled by a previous run are uploaded
first.`,
	RunE: runTrack,
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, user, err := newClient(ctx)
	if err != nil {
		return err
	}

	spool, err := outbox.Open(spoolDir)
	if err != nil {
		return err
	}
	defer spool.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	svc := session.NewService(client, *user, log)
	runner := cli.NewRunner(svc, client, spool, os.Stdin, os.Stdout)
	return runner.Run(ctx)
}

func init() {
	trackCmd.Flags().Bool("verbose", false, "log session internals to stderr")
}
