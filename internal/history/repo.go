// Package history retrieves and projects past analysis sessions.
package history

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talentlens-cli/internal/api"
	"github.com/jonathan/talentlens-cli/internal/session"
	"github.com/jonathan/talentlens-cli/internal/types"
)

// DefaultFetchConcurrency bounds how many detail fetches FetchAllDetails
// runs at once.
const DefaultFetchConcurrency = 4

// Service is the slice of the API client the repo needs.
type Service interface {
	History(ctx context.Context, token string) ([]types.AnalysisSessionSummary, error)
	HistoryDetail(ctx context.Context, token, sessionID string) (*types.AnalysisSessionDetail, error)
	DeleteHistory(ctx context.Context, token, sessionID string) error
}

// Repo wraps the history endpoints and keeps a local projection of the last
// fetched list. The projection is a display convenience, not a source of
// truth; a later List reconciles it with the server. List order is whatever
// the server returns; the client never re-sorts the list view.
type Repo struct {
	mu       sync.Mutex
	svc      Service
	store    *session.Store
	sessions []types.AnalysisSessionSummary
}

// NewRepo creates a repo bound to a service and a session store.
func NewRepo(svc Service, store *session.Store) *Repo {
	return &Repo{svc: svc, store: store}
}

// List fetches the list of past sessions. A result fetched under a token
// that is no longer current is returned to the caller but not applied to
// the projection.
func (r *Repo) List(ctx context.Context) ([]types.AnalysisSessionSummary, error) {
	token, ok := r.store.CurrentToken()
	if !ok {
		return nil, &api.PreconditionError{Reason: "not authenticated"}
	}

	sessions, err := r.svc.History(ctx, token)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if current, _ := r.store.CurrentToken(); current == token {
		r.sessions = make([]types.AnalysisSessionSummary, len(sessions))
		copy(r.sessions, sessions)
	}
	r.mu.Unlock()
	return sessions, nil
}

// Detail fetches one session's full ranked payload.
func (r *Repo) Detail(ctx context.Context, sessionID string) (*types.AnalysisSessionDetail, error) {
	token, ok := r.store.CurrentToken()
	if !ok {
		return nil, &api.PreconditionError{Reason: "not authenticated"}
	}
	return r.svc.HistoryDetail(ctx, token, sessionID)
}

// Delete removes a session on the server. On success the corresponding row
// is removed from the local projection; on failure the projection is left
// unchanged and the error is surfaced.
func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	token, ok := r.store.CurrentToken()
	if !ok {
		return &api.PreconditionError{Reason: "not authenticated"}
	}

	if err := r.svc.DeleteHistory(ctx, token, sessionID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.sessions[:0]
	for _, s := range r.sessions {
		if s.SessionID != sessionID {
			kept = append(kept, s)
		}
	}
	r.sessions = kept
	return nil
}

// Cached returns a copy of the local projection from the last List.
func (r *Repo) Cached() []types.AnalysisSessionSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.AnalysisSessionSummary, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// FetchAllDetails lists the sessions and fetches every detail payload, at
// most concurrency fetches in flight at once. Results come back in list
// order. The first failure cancels the remaining fetches.
func (r *Repo) FetchAllDetails(ctx context.Context, concurrency int) ([]types.AnalysisSessionDetail, error) {
	token, ok := r.store.CurrentToken()
	if !ok {
		return nil, &api.PreconditionError{Reason: "not authenticated"}
	}
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}

	sessions, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]types.AnalysisSessionDetail, len(sessions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, s := range sessions {
		i, s := i, s
		g.Go(func() error {
			detail, err := r.svc.HistoryDetail(ctx, token, s.SessionID)
			if err != nil {
				return err
			}
			details[i] = *detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
