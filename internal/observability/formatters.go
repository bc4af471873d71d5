// Package observability provides formatted terminal output and request
// logging utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/talentlens-cli/internal/collector"
	"github.com/jonathan/talentlens-cli/internal/presenter"
	"github.com/jonathan/talentlens-cli/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// scoreBarWidth is the width of the rendered score bar
	scoreBarWidth = 20
	// maxSkillsToShow is the number of skills displayed per list
	maxSkillsToShow = 6
)

// Printer handles formatted output for the CLI views.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// scoreBar renders a proportional bar for a score in [0,100].
func scoreBar(score float64) string {
	filled := int(score / 100 * scoreBarWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > scoreBarWidth {
		filled = scoreBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
}

func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "—"
	}
	if len(skills) <= maxSkillsToShow {
		return strings.Join(skills, ", ")
	}
	return fmt.Sprintf("%s … and %d more",
		strings.Join(skills[:maxSkillsToShow], ", "), len(skills)-maxSkillsToShow)
}

// PrintRanking outputs the ranked candidates of one analysis session.
func (p *Printer) PrintRanking(detail *types.AnalysisSessionDetail, ranked []presenter.DisplayCandidate) {
	if detail == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:    %s\n", detail.SessionID))
	sb.WriteString(fmt.Sprintf("Created:    %s\n", detail.CreatedAt.Local().Format(time.RFC1123)))
	sb.WriteString(fmt.Sprintf("Candidates: %d\n", len(ranked)))
	p.printBox("ANALYSIS SESSION", strings.TrimSuffix(sb.String(), "\n"))

	for _, candidate := range ranked {
		var cb strings.Builder
		cb.WriteString(fmt.Sprintf("Score:   %s%%  %s  [%s]\n",
			presenter.FormatScore(candidate.FinalScore), scoreBar(candidate.FinalScore), candidate.Tier))
		cb.WriteString(fmt.Sprintf("Verdict: %s\n", candidate.Feedback.Verdict))
		cb.WriteString(fmt.Sprintf("Matched: %s\n", joinSkills(candidate.MatchedSkills)))
		cb.WriteString(fmt.Sprintf("Missing: %s\n", joinSkills(candidate.MissingSkills)))
		if candidate.Feedback.Summary != "" {
			cb.WriteString(fmt.Sprintf("Summary: %s", candidate.Feedback.Summary))
		}

		title := fmt.Sprintf("#%d  %s", candidate.Rank, candidate.Filename)
		if candidate.BestMatch {
			title += "  ★ TOP MATCH"
		}
		p.printBox(title, strings.TrimSuffix(cb.String(), "\n"))
	}
}

// PrintHistory outputs the history list in the order received.
func (p *Printer) PrintHistory(sessions []types.AnalysisSessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(p.out, "No history found.")
		return
	}

	for _, s := range sessions {
		var sb strings.Builder
		description := s.JobDescription
		if len(description) > 120 {
			description = description[:120] + "..."
		}
		sb.WriteString(description + "\n\n")
		sb.WriteString(fmt.Sprintf("Top Score: %s%%\n", presenter.FormatScore(s.TopScore)))
		sb.WriteString(fmt.Sprintf("%d resumes · %s", s.TotalCandidates, s.CreatedAt.Local().Format(time.RFC1123)))
		p.printBox(s.SessionID, sb.String())
	}
}

// PrintPreflight outputs the local PDF readability reports.
func (p *Printer) PrintPreflight(reports []collector.PreflightReport) {
	if len(reports) == 0 {
		return
	}

	var sb strings.Builder
	for i, report := range reports {
		if report.Err != nil {
			sb.WriteString(fmt.Sprintf("✗ %s: %v", report.Name, report.Err))
		} else {
			sb.WriteString(fmt.Sprintf("✓ %s: %d page(s)", report.Name, report.Pages))
		}
		if i < len(reports)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("PDF PREFLIGHT", sb.String())
}
