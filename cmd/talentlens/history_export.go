package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentlens-cli/internal/gate"
	"github.com/jonathan/talentlens-cli/internal/history"
)

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every analysis session to JSON files",
	Long:  "Fetch the full detail of every past analysis session and write one JSON file per session into the output directory.",
	RunE:  runHistoryExport,
}

var (
	historyExportOut         string
	historyExportConcurrency int
)

func init() {
	historyExportCmd.Flags().StringVarP(&historyExportOut, "out", "o", "", "Output directory (required)")
	historyExportCmd.Flags().IntVar(&historyExportConcurrency, "concurrency", history.DefaultFetchConcurrency, "Maximum detail fetches in flight")

	if err := historyExportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	historyCmd.AddCommand(historyExportCmd)
}

func runHistoryExport(_ *cobra.Command, _ []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireRoute(gate.RouteHistoryList); err != nil {
		return err
	}

	repo := history.NewRepo(app.client, app.store)
	details, err := repo.FetchAllDetails(context.Background(), historyExportConcurrency)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(historyExportOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, detail := range details {
		payload, err := json.MarshalIndent(detail, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal session %s: %w", detail.SessionID, err)
		}
		path := filepath.Join(historyExportOut, detail.SessionID+".json")
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Exported %d session(s) to %s\n", len(details), historyExportOut)
	return nil
}
