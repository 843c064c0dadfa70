// history.go implements the "fittrack history" command.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved workouts, newest first",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, user, err := newClient(ctx)
	if err != nil {
		return err
	}

	workouts, err := client.ListWorkouts(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		fmt.Println("no saved workouts")
		return nil
	}

	for _, w := range workouts {
		duration := w.EndTime.Sub(w.StartTime.Time).Round(time.Minute)
		fmt.Printf("%s  %-30s  %s  (%s)\n",
			w.StartTime.Format("02.01.2006 15:04"), w.Name, duration, w.ID)
	}
	return nil
}
