package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentlens-cli/internal/gate"
	"github.com/jonathan/talentlens-cli/internal/history"
)

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete one analysis session",
	RunE:  runHistoryDelete,
	Args:  cobra.ExactArgs(1),
}

func init() {
	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistoryDelete(_ *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireRoute(gate.RouteHistoryList); err != nil {
		return err
	}

	repo := history.NewRepo(app.client, app.store)
	if err := repo.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", args[0], err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Deleted session %s\n", args[0])
	return nil
}
