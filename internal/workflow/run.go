// Package workflow drives one collect-submit-view cycle against the ranking
// service.
package workflow

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/talentlens-cli/internal/api"
	"github.com/jonathan/talentlens-cli/internal/collector"
	"github.com/jonathan/talentlens-cli/internal/session"
	"github.com/jonathan/talentlens-cli/internal/types"
)

// State is the position of a run in its lifecycle. Submitting is the only
// state that blocks further add, remove, and submit actions.
type State int

const (
	// Idle is a run with nothing collected yet.
	Idle State = iota
	// Collecting is a run whose files and description are being edited.
	// A failed submission returns here with the collected files and the
	// description intact, and the error retained on the run.
	Collecting
	// Submitting is a run with a submission in flight.
	Submitting
	// Succeeded is a run whose submission was acknowledged with a session id.
	Succeeded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Submitter is the slice of the API client a run needs.
type Submitter interface {
	Submit(ctx context.Context, token, jdText string, files []types.CandidateFile) (*types.SubmitResponse, error)
}

// Run is one workflow run: the collected files, the job description, and the
// submission state machine. A run is built, submitted once, and discarded;
// nothing is retried automatically.
type Run struct {
	mu          sync.Mutex
	state       State
	collector   *collector.Collector
	description string
	sessionID   string
	lastErr     error

	submitter Submitter
	store     *session.Store
}

// NewRun creates an idle run bound to a submitter and a session store.
func NewRun(submitter Submitter, store *session.Store) *Run {
	return &Run{
		state:     Idle,
		collector: collector.New(),
		submitter: submitter,
		store:     store,
	}
}

// AddFiles forwards to the collector and returns the admitted files.
// Rejected while a submission is in flight.
func (r *Run) AddFiles(files []types.CandidateFile) ([]types.CandidateFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Submitting {
		return nil, &api.PreconditionError{Reason: "a submission is in flight"}
	}
	r.state = Collecting
	return r.collector.Add(files), nil
}

// RemoveFile forwards to the collector. Rejected while a submission is in
// flight.
func (r *Run) RemoveFile(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Submitting {
		return &api.PreconditionError{Reason: "a submission is in flight"}
	}
	r.state = Collecting
	return r.collector.Remove(index)
}

// SetDescription records the job description text. Rejected while a
// submission is in flight.
func (r *Run) SetDescription(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Submitting {
		return &api.PreconditionError{Reason: "a submission is in flight"}
	}
	r.state = Collecting
	r.description = text
	return nil
}

// Files returns a copy of the collected files in insertion order.
func (r *Run) Files() []types.CandidateFile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collector.Files()
}

// Preflight reports local PDF readability for the collected files.
func (r *Run) Preflight() []collector.PreflightReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collector.Preflight()
}

// State returns the run's current state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SessionID returns the server-issued session id after a successful
// submission, or the empty string.
func (r *Run) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// Err returns the error retained from the last failed submission.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Submit sends the run as one atomic unit of work. Preconditions (a present
// token, at least one file, a non-empty description) are checked before any
// network call. At most one submission is ever in flight; a concurrent
// Submit is rejected. On success the run transitions to Succeeded carrying
// the session id; on failure it returns to Collecting with the files and
// description preserved.
func (r *Run) Submit(ctx context.Context) (string, error) {
	r.mu.Lock()
	if r.state == Submitting {
		r.mu.Unlock()
		return "", &api.PreconditionError{Reason: "a submission is in flight"}
	}
	token, ok := r.store.CurrentToken()
	if !ok {
		r.mu.Unlock()
		return "", &api.PreconditionError{Reason: "not authenticated"}
	}
	if r.collector.Len() == 0 {
		r.mu.Unlock()
		return "", &api.PreconditionError{Reason: "no files collected"}
	}
	if strings.TrimSpace(r.description) == "" {
		r.mu.Unlock()
		return "", &api.PreconditionError{Reason: "job description is empty"}
	}
	r.state = Submitting
	files := r.collector.Files()
	description := r.description
	r.mu.Unlock()

	response, err := r.submitter.Submit(ctx, token, description, files)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = Collecting
		r.lastErr = err
		return "", err
	}
	if response.SessionID == "" {
		protocolErr := &api.ProtocolError{Message: "missing session identifier"}
		r.state = Collecting
		r.lastErr = protocolErr
		return "", protocolErr
	}
	r.state = Succeeded
	r.sessionID = response.SessionID
	r.lastErr = nil
	return response.SessionID, nil
}
