// Package main implements the fittrack workout tracker CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Brati10/fitness-tracker/internal/api"
	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	serverURL string
	apiKey    string
	spoolDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "fittrack",
	Short:   "Workout tracker for the fittrack server",
	Version: Version,
	Long: `fittrack tracks strength and cardio workouts against a fittrack
server. The track command runs an interactive session; finished workouts
that cannot reach the server are spooled locally and retried on the next
run.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("FITTRACK_SERVER", "http://localhost:8080"), "fittrack server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("FITTRACK_API_KEY"), "per-user API key")
	rootCmd.PersistentFlags().StringVar(&spoolDir, "spool-dir", defaultSpoolDir(), "directory for locally spooled workouts")

	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(templatesCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSpoolDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fittrack"
	}
	return filepath.Join(home, ".fittrack")
}

// newClient builds the API client and resolves the authenticated user.
func newClient(ctx context.Context) (*api.Client, *models.User, error) {
	if apiKey == "" {
		return nil, nil, errors.New("no API key: set --api-key or FITTRACK_API_KEY")
	}
	client := api.NewClient(serverURL, apiKey)
	user, err := client.Me(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving user: %w", err)
	}
	return client, user, nil
}
