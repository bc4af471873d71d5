package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talentlens-cli/internal/types"
)

func testFiles() []types.CandidateFile {
	return []types.CandidateFile{
		{Name: "alice.pdf", ContentType: "application/pdf", SizeBytes: 8, Content: []byte("%PDF-1.4")},
		{Name: "bob.pdf", ContentType: "application/pdf", SizeBytes: 8, Content: []byte("%PDF-1.5")},
	}
}

func TestLogin_SendsFormEncodedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "user@example.com", r.PostFormValue("username"))
		assert.Equal(t, "hunter22", r.PostFormValue("password"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	token, err := client.Login(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestLogin_NormalizesDetailErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": [{"msg": "field required"}, {"msg": "too short"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Login(context.Background(), "user@example.com", "pw")
	require.Error(t, err)
	assert.EqualError(t, err, "field required, too short")
	assert.Equal(t, KindTransport, ErrorKind(err))
}

func TestLogin_MissingAccessTokenIsProtocolFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"token_type": "bearer"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Login(context.Background(), "user@example.com", "hunter22")
	assert.Equal(t, KindProtocol, ErrorKind(err))
}

func TestLogin_InvalidEmailIsPrecondition(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)
	_, err := client.Login(context.Background(), "not-an-email", "hunter22")
	assert.Equal(t, KindPrecondition, ErrorKind(err))
}

func TestRegister_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var body types.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body.Email)
		assert.Equal(t, "hunter22x", body.Password)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "u1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	assert.NoError(t, client.Register(context.Background(), "user@example.com", "hunter22x"))
}

func TestRegister_StringDetailSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail": "Email already registered"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.Register(context.Background(), "user@example.com", "hunter22x")
	assert.EqualError(t, err, "Email already registered")
}

func TestSubmit_SendsMultipartWithBearerAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rank_and_score", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Need a Go engineer", r.FormValue("jd_text"))

		parts := r.MultipartForm.File["files"]
		require.Len(t, parts, 2)
		assert.Equal(t, "alice.pdf", parts[0].Filename)
		assert.Equal(t, "bob.pdf", parts[1].Filename)

		first, err := parts[0].Open()
		require.NoError(t, err)
		defer func() { _ = first.Close() }()
		content, err := io.ReadAll(first)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(content))

		_ = json.NewEncoder(w).Encode(map[string]any{"session_id": "abc123", "total_resumes": 2})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.Submit(context.Background(), "tok-1", "Need a Go engineer", testFiles())
	require.NoError(t, err)
	assert.Equal(t, "abc123", result.SessionID)
	assert.Equal(t, 2, result.TotalResumes)
}

func TestSubmit_Preconditions(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)
	ctx := context.Background()

	_, err := client.Submit(ctx, "", "jd", testFiles())
	assert.Equal(t, KindPrecondition, ErrorKind(err))

	_, err = client.Submit(ctx, "tok", "  ", testFiles())
	assert.Equal(t, KindPrecondition, ErrorKind(err))

	_, err = client.Submit(ctx, "tok", "jd", nil)
	assert.Equal(t, KindPrecondition, ErrorKind(err))
}

func TestSubmit_MissingSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total_resumes": 2}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Submit(context.Background(), "tok-1", "jd", testFiles())
	require.Error(t, err)
	assert.EqualError(t, err, "missing session identifier")
	assert.Equal(t, KindProtocol, ErrorKind(err))
}

func TestSubmit_PlainTextFailureBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("ranking backend unavailable"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Submit(context.Background(), "tok-1", "jd", testFiles())
	assert.EqualError(t, err, "ranking backend unavailable")
}

func TestSubmit_UnauthorizedGetsDistinguishedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token invalid"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Submit(context.Background(), "tok-1", "jd", testFiles())
	assert.EqualError(t, err, "Session expired. Please log in again.")
	assert.Equal(t, KindAuthExpired, ErrorKind(err))
}

func TestHistory_ReturnsServerOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"session_id": "s2", "job_description": "jd2", "created_at": "2026-08-30T10:00:00Z", "top_score": 60.0, "total_candidates": 1},
			{"session_id": "s1", "job_description": "jd1", "created_at": "2026-08-29T10:00:00Z", "top_score": 91.2, "total_candidates": 3}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	sessions, err := client.History(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// The list view keeps the server's order even when scores would sort
	// differently.
	assert.Equal(t, "s2", sessions[0].SessionID)
	assert.Equal(t, 60.0, sessions[0].TopScore)
	assert.Equal(t, "s1", sessions[1].SessionID)
	assert.Equal(t, 91.2, sessions[1].TopScore)
}

func TestHistory_RequiresToken(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)
	_, err := client.History(context.Background(), "")
	assert.Equal(t, KindPrecondition, ErrorKind(err))
}

const validDetailPayload = `{
	"session_id": "abc123",
	"job_description": "Need a Go engineer",
	"created_at": "2026-08-30T10:00:00Z",
	"ranked_candidates": [
		{
			"filename": "alice.pdf",
			"final_score": 88.5,
			"matched_skills": ["Go", "PostgreSQL"],
			"missing_skills": ["Kubernetes"],
			"feedback": {"verdict": "Strong match", "summary": "Solid backend profile."}
		}
	]
}`

func TestHistoryDetail_DecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history/abc123", r.URL.Path)
		_, _ = w.Write([]byte(validDetailPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	detail, err := client.HistoryDetail(context.Background(), "tok-1", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", detail.SessionID)
	require.Len(t, detail.RankedCandidates, 1)
	assert.Equal(t, "alice.pdf", detail.RankedCandidates[0].Filename)
	assert.Equal(t, 88.5, detail.RankedCandidates[0].FinalScore)
	assert.Equal(t, "Strong match", detail.RankedCandidates[0].Feedback.Verdict)
}

func TestHistoryDetail_SchemaViolationIsProtocolFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// ranked_candidates entries missing required fields
		_, _ = w.Write([]byte(`{
			"session_id": "abc123",
			"job_description": "jd",
			"created_at": "2026-08-30T10:00:00Z",
			"ranked_candidates": [{"filename": "x.pdf"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.HistoryDetail(context.Background(), "tok-1", "abc123")
	require.Error(t, err)
	assert.Equal(t, KindProtocol, ErrorKind(err))
}

func TestHistoryDetail_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.HistoryDetail(context.Background(), "tok-1", "missing")
	assert.EqualError(t, err, "failed to load session details")
}

func TestDeleteHistory(t *testing.T) {
	deleted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/history/abc123", r.URL.Path)
		deleted = true
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	require.NoError(t, client.DeleteHistory(context.Background(), "tok-1", "abc123"))
	assert.True(t, deleted)
}

func TestDeleteHistory_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("not yours"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.DeleteHistory(context.Background(), "tok-1", "abc123")
	assert.EqualError(t, err, "not yours")
}

func TestClient_TransportFailure(t *testing.T) {
	// Nothing listens here; the request never completes.
	client := NewClient("http://127.0.0.1:1", nil)
	_, err := client.History(context.Background(), "tok-1")
	assert.Equal(t, KindTransport, ErrorKind(err))
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.com/", nil)
	assert.Equal(t, "http://example.com", client.BaseURL())
}
