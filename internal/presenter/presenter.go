// Package presenter orders ranked candidates for display and derives their
// visual tiers. Pure transformations with no rendering coupling.
package presenter

import (
	"sort"
	"strconv"

	"github.com/jonathan/talentlens-cli/internal/types"
)

// Tier buckets a final score for display.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

const (
	highThreshold   = 75.0
	mediumThreshold = 50.0
)

// DisplayCandidate is a ranked candidate augmented with its display rank,
// tier, and best-match flag.
type DisplayCandidate struct {
	types.RankedCandidate
	Rank      int
	Tier      Tier
	BestMatch bool
}

// TierFor returns high for scores of 75 and above, medium for 50 and above,
// and low otherwise.
func TierFor(score float64) Tier {
	switch {
	case score >= highThreshold:
		return TierHigh
	case score >= mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Rank produces the display sequence: sorted by final score descending,
// stable for ties, each element carrying its tier, and the top element
// flagged as the best match. The input slice is not modified, and applying
// Rank to an already ranked sequence yields the same order.
func Rank(candidates []types.RankedCandidate) []DisplayCandidate {
	out := make([]DisplayCandidate, len(candidates))
	for i, candidate := range candidates {
		out[i] = DisplayCandidate{RankedCandidate: candidate}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	for i := range out {
		out[i].Rank = i + 1
		out[i].Tier = TierFor(out[i].FinalScore)
		out[i].BestMatch = i == 0
	}
	return out
}

// FormatScore renders a score uniformly with one decimal place. Scores are
// always treated as real numbers; formatting happens only here, at the
// presentation boundary.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
