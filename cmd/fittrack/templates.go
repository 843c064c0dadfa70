// templates.go implements the "fittrack templates" command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List workout templates",
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, user, err := newClient(ctx)
	if err != nil {
		return err
	}

	templates, err := client.ListTemplates(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Println("no templates; save one from a session with 'save-template'")
		return nil
	}

	for _, t := range templates {
		fmt.Printf("%3d  %s\n", t.ID, t.Name)
	}
	return nil
}
