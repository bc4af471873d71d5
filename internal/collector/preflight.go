package collector

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/talentlens-cli/internal/types"
)

// PreflightReport describes a local readability check of one collected file.
type PreflightReport struct {
	Name  string
	Pages int
	Err   error
}

// Preflight opens every collected file with a PDF reader and reports page
// counts and unreadable files. Advisory only: the server remains the
// authority on what it accepts, and an unreadable file is not removed from
// the collection.
func (c *Collector) Preflight() []PreflightReport {
	reports := make([]PreflightReport, 0, len(c.files))
	for _, file := range c.files {
		report := PreflightReport{Name: file.Name}
		report.Pages, report.Err = countPages(file)
		reports = append(reports, report)
	}
	return reports
}

// countPages opens the file bytes as a PDF. The reader panics on some
// malformed inputs, so the panic is folded into the error return.
func countPages(file types.CandidateFile) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = 0
			err = fmt.Errorf("unreadable pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))
	if err != nil {
		return 0, fmt.Errorf("unreadable pdf: %w", err)
	}
	return reader.NumPage(), nil
}
