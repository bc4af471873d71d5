// Package types provides type definitions for structured data exchanged with the TalentLens ranking service.
package types

import "time"

// Feedback carries the service's written assessment of one candidate.
type Feedback struct {
	Verdict string `json:"verdict"`
	Summary string `json:"summary"`
}

// RankedCandidate is one scored resume within an analysis session. Scores are
// produced entirely by the remote service; the client only orders and renders
// them.
type RankedCandidate struct {
	Filename      string   `json:"filename"`
	FinalScore    float64  `json:"final_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Feedback      Feedback `json:"feedback"`
}

// AnalysisSessionSummary is one row of the history list. Immutable once
// fetched; TopScore is maintained by the server as the maximum final score
// across the session's candidates.
type AnalysisSessionSummary struct {
	SessionID       string    `json:"session_id"`
	JobDescription  string    `json:"job_description"`
	CreatedAt       time.Time `json:"created_at"`
	TopScore        float64   `json:"top_score"`
	TotalCandidates int       `json:"total_candidates"`
}

// AnalysisSessionDetail is the full record of one completed ranking run.
type AnalysisSessionDetail struct {
	SessionID        string            `json:"session_id"`
	JobDescription   string            `json:"job_description"`
	CreatedAt        time.Time         `json:"created_at"`
	RankedCandidates []RankedCandidate `json:"ranked_candidates"`
}

// SubmitResponse is the payload returned by the ranking endpoint. Only
// SessionID matters to the canonical flow; the ranked payload is fetched
// through the history detail endpoint afterwards.
type SubmitResponse struct {
	SessionID    string `json:"session_id"`
	TotalResumes int    `json:"total_resumes,omitempty"`
}

// CandidateFile is one resume collected for a workflow run. Identity within a
// run is Name; two files with the same name are duplicates.
type CandidateFile struct {
	Name        string
	ContentType string
	SizeBytes   int64
	Content     []byte
}
