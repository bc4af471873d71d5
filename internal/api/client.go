// Package api implements the HTTP client for the TalentLens ranking service.
// This package centralizes request construction, bearer authentication, and
// the normalization of the service's error bodies.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talentlens-cli/internal/schemas"
	"github.com/jonathan/talentlens-cli/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "talentlens-cli/1.0"

// Options configures the client behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Logger:    zap.NewNop(),
	}
}

// Client talks to one TalentLens API deployment. All methods issue exactly
// one request; nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// BaseURL returns the service root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	request := types.RegisterRequest{Email: email, Password: password}
	if err := request.Validate(); err != nil {
		return &PreconditionError{Reason: fmt.Sprintf("invalid registration request: %v", err)}
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal registration request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, body, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return authFailure(resp.StatusCode, body, "registration failed")
	}
	return nil
}

// Login exchanges credentials for a bearer token. The endpoint expects a
// form-encoded body with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	request := types.LoginRequest{Email: email, Password: password}
	if err := request.Validate(); err != nil {
		return nil, &PreconditionError{Reason: fmt.Sprintf("invalid login request: %v", err)}
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, authFailure(resp.StatusCode, body, "login failed")
	}

	var token types.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed login response: %v", err)}
	}
	if token.AccessToken == "" {
		return nil, &ProtocolError{Message: "login response missing access token"}
	}
	return &token, nil
}

// Submit sends the job description and every collected file as one multipart
// request. The response must carry a session id; an acknowledgment without
// one is a failure.
func (c *Client) Submit(ctx context.Context, token, jdText string, files []types.CandidateFile) (*types.SubmitResponse, error) {
	if token == "" {
		return nil, &PreconditionError{Reason: "not authenticated"}
	}
	if strings.TrimSpace(jdText) == "" {
		return nil, &PreconditionError{Reason: "job description is empty"}
	}
	if len(files) == 0 {
		return nil, &PreconditionError{Reason: "no files to submit"}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("jd_text", jdText); err != nil {
		return nil, fmt.Errorf("failed to write jd_text field: %w", err)
	}
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file for %s: %w", file.Name, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("failed to write content for %s: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/rank_and_score", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, failure(resp.StatusCode, body, "failed to analyze resumes")
	}

	var result types.SubmitResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed analysis response: %v", err)}
	}
	if result.SessionID == "" {
		return nil, &ProtocolError{Message: "missing session identifier"}
	}
	return &result, nil
}

// History fetches the list of past analysis sessions in the order the server
// returns them.
func (c *Client) History(ctx context.Context, token string) ([]types.AnalysisSessionSummary, error) {
	if token == "" {
		return nil, &PreconditionError{Reason: "not authenticated"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/history", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, failure(resp.StatusCode, body, "failed to load history")
	}

	var sessions []types.AnalysisSessionSummary
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed history response: %v", err)}
	}
	return sessions, nil
}

// HistoryDetail fetches one session's full ranked payload. The payload is
// checked against the bundled schema before it is decoded.
func (c *Client) HistoryDetail(ctx context.Context, token, sessionID string) (*types.AnalysisSessionDetail, error) {
	if token == "" {
		return nil, &PreconditionError{Reason: "not authenticated"}
	}
	if sessionID == "" {
		return nil, &PreconditionError{Reason: "session id is empty"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/history/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, failure(resp.StatusCode, body, "failed to load session details")
	}

	if err := schemas.ValidateSessionDetail(body); err != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("unexpected session detail payload: %v", err)}
	}

	var detail types.AnalysisSessionDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed session detail response: %v", err)}
	}
	return &detail, nil
}

// DeleteHistory removes one analysis session on the server.
func (c *Client) DeleteHistory(ctx context.Context, token, sessionID string) error {
	if token == "" {
		return &PreconditionError{Reason: "not authenticated"}
	}
	if sessionID == "" {
		return &PreconditionError{Reason: "session id is empty"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/history/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(resp.StatusCode, body, "failed to delete session")
	}
	return nil
}

// do executes one request and reads the full body. Transport-level failures
// come back as TransportError with no status code.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, nil, &TransportError{Message: "request failed: " + err.Error(), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Message: "failed to read response body", Cause: err}
	}

	c.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, body, nil
}
