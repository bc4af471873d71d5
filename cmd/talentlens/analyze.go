package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentlens-cli/internal/gate"
	"github.com/jonathan/talentlens-cli/internal/history"
	"github.com/jonathan/talentlens-cli/internal/observability"
	"github.com/jonathan/talentlens-cli/internal/presenter"
	"github.com/jonathan/talentlens-cli/internal/types"
	"github.com/jonathan/talentlens-cli/internal/workflow"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [pdf files...]",
	Short: "Rank resumes against a job description",
	Long:  "Collect PDF resumes and a job description, submit them as one analysis, and render the ranked result. Non-PDF files and duplicate names are skipped.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeJDText      string
	analyzeJDFile      string
	analyzeNoPreflight bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJDText, "jd", "", "Job description text (mutually exclusive with --jd-file)")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd-file", "", "Path to a job description text file")
	analyzeCmd.Flags().BoolVar(&analyzeNoPreflight, "no-preflight", false, "Skip the local PDF readability check")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	if analyzeJDText != "" && analyzeJDFile != "" {
		return fmt.Errorf("cannot use --jd with --jd-file")
	}
	if analyzeJDText == "" && analyzeJDFile == "" {
		return fmt.Errorf("must provide either --jd or --jd-file")
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.requireRoute(gate.RouteUpload); err != nil {
		return err
	}

	jdText := analyzeJDText
	if analyzeJDFile != "" {
		content, err := os.ReadFile(analyzeJDFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		jdText = string(content)
	}

	files := make([]types.CandidateFile, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, types.CandidateFile{
			Name:        filepath.Base(path),
			ContentType: declaredContentType(path),
			SizeBytes:   int64(len(content)),
			Content:     content,
		})
	}

	run := workflow.NewRun(app.client, app.store)
	admitted, err := run.AddFiles(files)
	if err != nil {
		return err
	}
	if skipped := len(files) - len(admitted); skipped > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "Skipped %d file(s): not PDF or duplicate name\n", skipped)
	}
	if err := run.SetDescription(jdText); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if !analyzeNoPreflight {
		printer.PrintPreflight(run.Preflight())
	}

	ctx := context.Background()
	_, _ = fmt.Fprintf(os.Stdout, "Analyzing %d resume(s)...\n", len(admitted))
	sessionID, err := run.Submit(ctx)
	if err != nil {
		return err
	}

	repo := history.NewRepo(app.client, app.store)
	detail, err := repo.Detail(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("analysis %s completed but the result could not be loaded: %w", sessionID, err)
	}

	printer.PrintRanking(detail, presenter.Rank(detail.RankedCandidates))
	return nil
}

// declaredContentType maps a file path to the content type the collector
// filters on.
func declaredContentType(path string) string {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return strings.ToLower(contentType)
}
