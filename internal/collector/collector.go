// Package collector accumulates candidate files for one workflow run,
// deduplicating by name.
package collector

import (
	"fmt"

	"github.com/jonathan/talentlens-cli/internal/types"
)

// PDFContentType is the only declared content type the collector admits.
const PDFContentType = "application/pdf"

// Collector holds the files for one workflow run. The collection never
// contains two entries with the same name; first-insertion order is
// preserved for unaffected entries. No upper bound on count or aggregate
// size is enforced here.
type Collector struct {
	files []types.CandidateFile
	names map[string]bool
}

// New returns an empty collector.
func New() *Collector {
	return &Collector{names: make(map[string]bool)}
}

// Add filters the input to PDF files, drops any whose name is already
// collected, and appends the survivors in input order. It returns the files
// actually admitted. Adding the same batch twice admits nothing the second
// time.
func (c *Collector) Add(files []types.CandidateFile) []types.CandidateFile {
	admitted := make([]types.CandidateFile, 0, len(files))
	for _, file := range files {
		if file.ContentType != PDFContentType {
			continue
		}
		if c.names[file.Name] {
			continue
		}
		c.names[file.Name] = true
		c.files = append(c.files, file)
		admitted = append(admitted, file)
	}
	return admitted
}

// Remove deletes the file at index, shifting subsequent entries down. The
// removed name may be re-admitted by a later Add.
func (c *Collector) Remove(index int) error {
	if index < 0 || index >= len(c.files) {
		return fmt.Errorf("no file at index %d", index)
	}
	delete(c.names, c.files[index].Name)
	c.files = append(c.files[:index], c.files[index+1:]...)
	return nil
}

// Files returns a copy of the collection in insertion order.
func (c *Collector) Files() []types.CandidateFile {
	out := make([]types.CandidateFile, len(c.files))
	copy(out, c.files)
	return out
}

// Len returns the number of collected files.
func (c *Collector) Len() int {
	return len(c.files)
}

// TotalBytes returns the aggregate declared size of the collection.
func (c *Collector) TotalBytes() int64 {
	var total int64
	for _, file := range c.files {
		total += file.SizeBytes
	}
	return total
}
