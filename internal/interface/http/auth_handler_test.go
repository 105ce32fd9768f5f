package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/pkg/helpers"
)

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterThenMe(t *testing.T) {
	env := newAuthEnv(t)

	w := doJSON(t, env.Router, http.MethodPost, "/auth/register", `{"email":"anna@example.com","password":"secret1","name":"Anna"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	ck := sessionCookie(t, w)
	require.NotNil(t, ck, "register should set a session cookie")
	assert.True(t, ck.HttpOnly)
	assert.NotEmpty(t, ck.Value)

	// responses never leak the stored credential digest
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = doJSON(t, env.Router, http.MethodGet, "/auth/me", "", ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data struct {
			User struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "anna@example.com", body.Data.User.Email)
	assert.Equal(t, "USER", body.Data.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newAuthEnv(t)

	w := doJSON(t, env.Router, http.MethodPost, "/auth/register", `{"email":"anna@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.Router, http.MethodPost, "/auth/register", `{"email":"anna@example.com","password":"other12"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Nil(t, sessionCookie(t, w), "conflict must not issue a session")

	users, err := env.Repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterValidation(t *testing.T) {
	env := newAuthEnv(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"not-an-email","password":"secret1"}`},
		{"short password", `{"email":"anna@example.com","password":"abc"}`},
		{"missing fields", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, env.Router, http.MethodPost, "/auth/register", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, sessionCookie(t, w))
		})
	}
}

func TestLogin(t *testing.T) {
	env := newAuthEnv(t)
	doJSON(t, env.Router, http.MethodPost, "/auth/register", `{"email":"anna@example.com","password":"secret1"}`)

	t.Run("correct password", func(t *testing.T) {
		w := doJSON(t, env.Router, http.MethodPost, "/auth/login", `{"email":"anna@example.com","password":"secret1"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, sessionCookie(t, w))
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, env.Router, http.MethodPost, "/auth/login", `{"email":"anna@example.com","password":"wrong12"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
		assert.Nil(t, sessionCookie(t, w))
	})

	t.Run("unknown email reads the same", func(t *testing.T) {
		w := doJSON(t, env.Router, http.MethodPost, "/auth/login", `{"email":"ghost@example.com","password":"secret1"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})
}

func TestMeAfterUserDeleted(t *testing.T) {
	env := newAuthEnv(t)

	w := doJSON(t, env.Router, http.MethodPost, "/auth/register", `{"email":"anna@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	ck := sessionCookie(t, w)
	require.NotNil(t, ck)

	u, err := env.Repo.GetByEmail(context.Background(), "anna@example.com")
	require.NoError(t, err)
	require.NoError(t, env.Repo.Delete(context.Background(), u.ID))

	w = doJSON(t, env.Router, http.MethodGet, "/auth/me", "", ck)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionOptionalIdentity(t *testing.T) {
	env := newAuthEnv(t)

	// anonymous callers are not rejected
	w := doJSON(t, env.Router, http.MethodGet, "/auth/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	reg := doJSON(t, env.Router, http.MethodPost, "/auth/register", `{"email":"anna@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, reg.Code)
	ck := sessionCookie(t, reg)

	w = doJSON(t, env.Router, http.MethodGet, "/auth/session", "", ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), "anna@example.com")

	// a broken token degrades to anonymous instead of 401
	w = doJSON(t, env.Router, http.MethodGet, "/auth/session", "", &http.Cookie{Name: helpers.SessionCookieName, Value: "garbage"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newAuthEnv(t)

	w := doJSON(t, env.Router, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	ck := sessionCookie(t, w)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 1)
}

func TestAdminUsersRequiresAdminRole(t *testing.T) {
	env := newAuthEnv(t)

	w := doJSON(t, env.Router, http.MethodPost, "/auth/register", `{"email":"anna@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	ck := sessionCookie(t, w)

	w = doJSON(t, env.Router, http.MethodGet, "/admin/users", "", ck)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// promote in the store; the same token now passes because the role is
	// read from the store on every request
	u, err := env.Repo.GetByEmail(context.Background(), "anna@example.com")
	require.NoError(t, err)
	u.Role = entity.RoleAdmin
	require.NoError(t, env.Repo.Update(context.Background(), u))

	w = doJSON(t, env.Router, http.MethodGet, "/admin/users", "", ck)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "anna@example.com")
	assert.NotContains(t, w.Body.String(), "password_hash")
}
