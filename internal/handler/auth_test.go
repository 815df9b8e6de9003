package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarsv/passvault/internal/utils"
)

func TestSignup_TokenSubjectMatchesUser(t *testing.T) {
	e, users, _ := newTestAPI(t)

	tokenA := signup(t, e, "alice", "pw-a")
	tokenB := signup(t, e, "bob", "pw-b")

	subA, err := utils.ParseToken(testSecret, tokenA)
	require.NoError(t, err)
	subB, err := utils.ParseToken(testSecret, tokenB)
	require.NoError(t, err)

	assert.Equal(t, users.users["alice"].ID, subA)
	assert.Equal(t, users.users["bob"].ID, subB)
	assert.NotEqual(t, subA, subB)
}

func TestSignup_StoresHashNotPlaintext(t *testing.T) {
	e, users, _ := newTestAPI(t)

	signup(t, e, "alice", "hunter2")

	hash := users.users["alice"].PasswordHash
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, utils.VerifyPassword(hash, "hunter2"))
}

func TestSignup_DuplicateUsername(t *testing.T) {
	e, users, _ := newTestAPI(t)

	signup(t, e, "alice", "pw-1")
	rec := doJSON(t, e, http.MethodPost, "/api/auth/signup", "",
		`{"username":"alice","password":"pw-2"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "taken")
	assert.Equal(t, 1, users.count(), "second signup must not persist a user")
}

func TestSignup_MissingFields(t *testing.T) {
	e, users, _ := newTestAPI(t)

	cases := []string{
		`{}`,
		`{"username":"alice"}`,
		`{"password":"pw"}`,
		`{"username":"","password":"pw"}`,
		`{"username":"   ","password":"pw"}`,
		`{"username":"alice","password":""}`,
	}
	for _, body := range cases {
		rec := doJSON(t, e, http.MethodPost, "/api/auth/signup", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, 0, users.count())
}

func TestLogin_Success(t *testing.T) {
	e, _, _ := newTestAPI(t)
	signup(t, e, "alice", "hunter2")

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		`{"username":"alice","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Contains(t, body, `"user":"alice"`)
	assert.Contains(t, body, `"token"`)
	assert.NotContains(t, body, "hunter2")
}

func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	e, _, _ := newTestAPI(t)
	signup(t, e, "alice", "correct")

	wrongPW := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		`{"username":"alice","password":"wrong"}`)
	unknown := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		`{"username":"nobody","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, wrongPW.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, wrongPW.Body.String(), unknown.Body.String(),
		"responses must not reveal whether the username exists")
}

func TestSignup_DistinctUsersGetUsableTokens(t *testing.T) {
	e, _, _ := newTestAPI(t)

	for i := 0; i < 5; i++ {
		username := fmt.Sprintf("user%d", i)
		token := signup(t, e, username, "pw")
		recs := listRecords(t, e, token)
		assert.Empty(t, recs)
	}
}
