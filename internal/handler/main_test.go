package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/edgarsv/passvault/internal/config"
	"github.com/edgarsv/passvault/internal/handler"
	"github.com/edgarsv/passvault/internal/model"
	"github.com/edgarsv/passvault/internal/repository"
	"github.com/edgarsv/passvault/internal/router"
)

const testSecret = "test-secret"

// memUserStore is an in-memory stand-in for the user repository, with the
// same uniqueness and not-found semantics.
type memUserStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]model.User // keyed by username
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]model.User{}}
}

func (s *memUserStore) Create(_ context.Context, username, passwordHash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return model.User{}, repository.ErrUsernameTaken
	}
	s.seq++
	u := model.User{
		ID:           fmt.Sprintf("user-%d", s.seq),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[username] = u
	return u, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// memRecordStore is an in-memory stand-in for the record repository. Creation
// times strictly increase so the descending list order is deterministic.
type memRecordStore struct {
	mu   sync.Mutex
	seq  int
	base time.Time
	recs []model.Record
}

func newMemRecordStore() *memRecordStore {
	return &memRecordStore{base: time.Now().UTC()}
}

func (s *memRecordStore) Create(_ context.Context, rec model.Record) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec.ID = fmt.Sprintf("rec-%d", s.seq)
	rec.CreatedAt = s.base.Add(time.Duration(s.seq) * time.Millisecond)
	s.recs = append(s.recs, rec)
	return rec, nil
}

func (s *memRecordStore) ListByOwner(_ context.Context, ownerID string) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Record{}
	for _, r := range s.recs {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memRecordStore) DeleteByIDAndOwner(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.recs {
		if r.ID == id && r.OwnerID == ownerID {
			s.recs = append(s.recs[:i], s.recs[i+1:]...)
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

// newTestAPI wires real handlers, middleware and routes around the in-memory
// stores, with the record-list cache disabled.
func newTestAPI(t *testing.T) (*echo.Echo, *memUserStore, *memRecordStore) {
	t.Helper()
	cfg := config.Config{JWTSecret: testSecret, BcryptCost: bcrypt.MinCost}
	users := newMemUserStore()
	records := newMemRecordStore()
	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewRecordHandler(records, nil),
		cfg.JWTSecret)
	return e, users, records
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// signup registers a user through the API and returns the issued token.
func signup(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/auth/signup", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User  string `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, username, resp.User)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func listRecords(t *testing.T, e *echo.Echo, token string) []model.Record {
	t.Helper()
	rec := doJSON(t, e, http.MethodGet, "/api/records", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var recs []model.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	return recs
}

func createRecord(t *testing.T, e *echo.Echo, token, body string) model.Record {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/records", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out model.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
