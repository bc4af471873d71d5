package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentlens-cli/internal/gate"
	"github.com/jonathan/talentlens-cli/internal/history"
	"github.com/jonathan/talentlens-cli/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis sessions",
	Long:  "List past analysis sessions in the order the server returns them.",
	RunE:  runHistoryList,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireRoute(gate.RouteHistoryList); err != nil {
		return err
	}

	repo := history.NewRepo(app.client, app.store)
	sessions, err := repo.List(context.Background())
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintHistory(sessions)
	return nil
}
