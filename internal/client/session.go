// Package client implements the session manager used by PassVault front
// ends. A Session is a small state machine: it is either Unauthenticated or
// Authenticated, keyed purely on whether it currently holds a token. Signup
// and login flip it to Authenticated; an explicit Logout, or ANY protected
// call answered with 401, flips it back. The raw password is never retained.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/edgarsv/passvault/internal/model"
)

// State is the session's authentication state.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

// ErrNotAuthenticated is returned by protected calls made while the session
// holds no token.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrSessionExpired is returned when the server rejects the session's token.
// The session has already dropped the token by the time the caller sees this;
// the only way forward is a fresh login.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-2xx server response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// Session talks to the PassVault API and holds the bearer token between
// calls. It is safe for concurrent use.
type Session struct {
	baseURL string
	hc      *http.Client

	mu    sync.Mutex
	token string
	user  string
}

// NewSession creates an unauthenticated session against baseURL. Passing a
// nil http.Client uses http.DefaultClient.
func NewSession(baseURL string, hc *http.Client) *Session {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Session{baseURL: baseURL, hc: hc}
}

// State reports whether the session currently holds a token.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return StateUnauthenticated
	}
	return StateAuthenticated
}

// User returns the username the session authenticated as, if any.
func (s *Session) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Resume adopts a previously stored token, e.g. one persisted by the CLI
// between invocations. Whether it is still valid is discovered on the first
// protected call.
func (s *Session) Resume(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Logout drops the token, returning the session to Unauthenticated. Tokens
// are not revocable server-side, so this is purely a client-side transition.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = ""
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResp struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

// Signup creates an account and authenticates the session with the returned
// token.
func (s *Session) Signup(ctx context.Context, username, password string) error {
	return s.authenticate(ctx, "/api/auth/signup", username, password)
}

// Login authenticates the session with existing credentials.
func (s *Session) Login(ctx context.Context, username, password string) error {
	return s.authenticate(ctx, "/api/auth/login", username, password)
}

func (s *Session) authenticate(ctx context.Context, path, username, password string) error {
	var resp authResp
	if err := s.do(ctx, http.MethodPost, path, "", credentialsReq{Username: username, Password: password}, &resp); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	s.mu.Unlock()
	return nil
}

// RecordInput are the caller-supplied fields of a new record.
type RecordInput struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
	Secret   string `json:"password"`
	Notes    string `json:"notes"`
}

// ListRecords fetches all records owned by the authenticated user, most
// recent first.
func (s *Session) ListRecords(ctx context.Context) ([]model.Record, error) {
	var recs []model.Record
	if err := s.doProtected(ctx, http.MethodGet, "/api/records", nil, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []model.Record{}
	}
	return recs, nil
}

// CreateRecord stores a new record and returns it as persisted, including
// the server-assigned id and creation time.
func (s *Session) CreateRecord(ctx context.Context, in RecordInput) (model.Record, error) {
	var rec model.Record
	if err := s.doProtected(ctx, http.MethodPost, "/api/records", in, &rec); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// DeleteRecord deletes one of the caller's records by id.
func (s *Session) DeleteRecord(ctx context.Context, id string) error {
	return s.doProtected(ctx, http.MethodDelete, "/api/records/"+id, nil, nil)
}

// doProtected runs an authenticated request. A 401 from the server forces
// the session back to Unauthenticated regardless of which call it was.
func (s *Session) doProtected(ctx context.Context, method, path string, body, out any) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	err := s.do(ctx, method, path, token, body, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		s.Logout()
		return ErrSessionExpired
	}
	return err
}

func (s *Session) do(ctx context.Context, method, path, token string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(bs)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
