package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentlens-cli/internal/gate"
	"github.com/jonathan/talentlens-cli/internal/history"
	"github.com/jonathan/talentlens-cli/internal/observability"
	"github.com/jonathan/talentlens-cli/internal/presenter"
)

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one analysis session's ranked candidates",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireRoute(gate.RouteHistoryDetail); err != nil {
		return err
	}

	repo := history.NewRepo(app.client, app.store)
	detail, err := repo.Detail(context.Background(), args[0])
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintRanking(detail, presenter.Rank(detail.RankedCandidates))
	return nil
}
