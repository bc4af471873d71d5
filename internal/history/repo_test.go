package history

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talentlens-cli/internal/api"
	"github.com/jonathan/talentlens-cli/internal/session"
	"github.com/jonathan/talentlens-cli/internal/types"
)

// fakeService plays back scripted history responses and records tokens.
type fakeService struct {
	mu          sync.Mutex
	sessions    []types.AnalysisSessionSummary
	details     map[string]*types.AnalysisSessionDetail
	listErr     error
	detailErr   error
	deleteErr   error
	deleted     []string
	onList      func()
	maxInFlight int
	inFlight    int
}

func (f *fakeService) History(_ context.Context, _ string) ([]types.AnalysisSessionSummary, error) {
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.AnalysisSessionSummary, len(f.sessions))
	copy(out, f.sessions)
	return out, nil
}

func (f *fakeService) HistoryDetail(_ context.Context, _, sessionID string) (*types.AnalysisSessionDetail, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()
	time.Sleep(time.Millisecond)
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.detailErr != nil {
		return nil, f.detailErr
	}
	detail, ok := f.details[sessionID]
	if !ok {
		return nil, &api.TransportError{StatusCode: 404, Message: "failed to load session details"}
	}
	return detail, nil
}

func (f *fakeService) DeleteHistory(_ context.Context, _, sessionID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func summaries(ids ...string) []types.AnalysisSessionSummary {
	out := make([]types.AnalysisSessionSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.AnalysisSessionSummary{SessionID: id})
	}
	return out
}

func loggedInStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore()
	require.NoError(t, store.Login("tok-1"))
	return store
}

func TestList_KeepsServerOrder(t *testing.T) {
	svc := &fakeService{sessions: []types.AnalysisSessionSummary{
		{SessionID: "s2", TopScore: 60.0},
		{SessionID: "s1", TopScore: 91.2},
	}}
	repo := NewRepo(svc, loggedInStore(t))

	sessions, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].SessionID)
	assert.Equal(t, "s1", sessions[1].SessionID)

	cached := repo.Cached()
	require.Len(t, cached, 2)
	assert.Equal(t, "s2", cached[0].SessionID)
}

func TestList_RequiresToken(t *testing.T) {
	repo := NewRepo(&fakeService{}, session.NewStore())
	_, err := repo.List(context.Background())
	assert.Equal(t, api.KindPrecondition, api.ErrorKind(err))
}

func TestList_StaleTokenResultNotApplied(t *testing.T) {
	store := loggedInStore(t)
	svc := &fakeService{sessions: summaries("s1")}
	// The session changes while the request is in flight; the arriving
	// result no longer matches the current key and is not applied.
	svc.onList = func() {
		require.NoError(t, store.Logout())
		require.NoError(t, store.Login("tok-2"))
	}
	repo := NewRepo(svc, store)

	sessions, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Empty(t, repo.Cached())
}

func TestDelete_RemovesRowOptimistically(t *testing.T) {
	svc := &fakeService{sessions: summaries("abc123", "s2")}
	repo := NewRepo(svc, loggedInStore(t))
	_, err := repo.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), "abc123"))

	assert.Equal(t, []string{"abc123"}, svc.deleted)
	cached := repo.Cached()
	require.Len(t, cached, 1)
	assert.Equal(t, "s2", cached[0].SessionID)
}

func TestDelete_FailureLeavesListUnchanged(t *testing.T) {
	svc := &fakeService{
		sessions:  summaries("abc123", "s2"),
		deleteErr: &api.TransportError{StatusCode: 500, Message: "boom"},
	}
	repo := NewRepo(svc, loggedInStore(t))
	_, err := repo.List(context.Background())
	require.NoError(t, err)

	err = repo.Delete(context.Background(), "abc123")
	require.Error(t, err)
	assert.Len(t, repo.Cached(), 2)
}

func TestDelete_RequiresToken(t *testing.T) {
	repo := NewRepo(&fakeService{}, session.NewStore())
	err := repo.Delete(context.Background(), "abc123")
	assert.Equal(t, api.KindPrecondition, api.ErrorKind(err))
}

func TestDetail_FetchesByID(t *testing.T) {
	svc := &fakeService{details: map[string]*types.AnalysisSessionDetail{
		"abc123": {SessionID: "abc123"},
	}}
	repo := NewRepo(svc, loggedInStore(t))

	detail, err := repo.Detail(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", detail.SessionID)

	_, err = repo.Detail(context.Background(), "missing")
	assert.Error(t, err)
}

func TestDetail_RequiresToken(t *testing.T) {
	repo := NewRepo(&fakeService{}, session.NewStore())
	_, err := repo.Detail(context.Background(), "abc123")
	assert.Equal(t, api.KindPrecondition, api.ErrorKind(err))
}

func TestFetchAllDetails_ListOrderAndBoundedConcurrency(t *testing.T) {
	svc := &fakeService{
		sessions: summaries("s1", "s2", "s3", "s4", "s5", "s6"),
		details: map[string]*types.AnalysisSessionDetail{
			"s1": {SessionID: "s1"}, "s2": {SessionID: "s2"}, "s3": {SessionID: "s3"},
			"s4": {SessionID: "s4"}, "s5": {SessionID: "s5"}, "s6": {SessionID: "s6"},
		},
	}
	repo := NewRepo(svc, loggedInStore(t))

	details, err := repo.FetchAllDetails(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, details, 6)
	for i, want := range []string{"s1", "s2", "s3", "s4", "s5", "s6"} {
		assert.Equal(t, want, details[i].SessionID)
	}
	assert.LessOrEqual(t, svc.maxInFlight, 2)
}

func TestFetchAllDetails_FirstErrorWins(t *testing.T) {
	svc := &fakeService{
		sessions:  summaries("s1", "s2"),
		detailErr: &api.TransportError{StatusCode: 500, Message: "boom"},
	}
	repo := NewRepo(svc, loggedInStore(t))

	_, err := repo.FetchAllDetails(context.Background(), 2)
	assert.Error(t, err)
}

func TestFetchAllDetails_RequiresToken(t *testing.T) {
	repo := NewRepo(&fakeService{}, session.NewStore())
	_, err := repo.FetchAllDetails(context.Background(), 2)
	assert.Equal(t, api.KindPrecondition, api.ErrorKind(err))
}
