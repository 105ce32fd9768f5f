package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/pkg/helpers"
)

// stubResolver resolves identities from a fixed map, standing in for the user
// store.
type stubResolver struct {
	identities map[string]*entity.Identity
}

func (r *stubResolver) Resolve(ctx context.Context, userID string) (*entity.Identity, error) {
	ident, ok := r.identities[userID]
	if !ok {
		return nil, application.ErrUserNotFound
	}
	return ident, nil
}

func newTestRouter(jwtm *helpers.JWTManager, resolver IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	whoami := func(c *gin.Context) {
		if ident, ok := IdentityFrom(c); ok {
			c.JSON(http.StatusOK, gin.H{"id": ident.ID, "role": ident.Role})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": nil})
	}

	r.GET("/protected", RequireAuth(jwtm, resolver, nil), whoami)
	r.GET("/maybe", OptionalAuth(jwtm, resolver), whoami)
	r.GET("/admin", RequireAuth(jwtm, resolver, nil), AdminOnly(), whoami)
	// AdminOnly mounted without RequireAuth must fail closed.
	r.GET("/admin-standalone", AdminOnly(), whoami)
	return r
}

func do(t *testing.T, r *gin.Engine, path, cookie, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: cookie})
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	resolver := &stubResolver{identities: map[string]*entity.Identity{
		"u1": {ID: "u1", Email: "a@x.com", Role: entity.RoleUser},
	}}
	r := newTestRouter(jwtm, resolver)

	valid, _, err := jwtm.Generate("u1", "a@x.com", "USER")
	require.NoError(t, err)
	deleted, _, err := jwtm.Generate("gone", "gone@x.com", "USER")
	require.NoError(t, err)
	foreign, _, err := helpers.NewJWTManager("other-secret", time.Hour).Generate("u1", "a@x.com", "USER")
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager("test-secret", -time.Minute).Generate("u1", "a@x.com", "USER")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
		bearer string
		want   int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"garbage cookie", "garbage", "", http.StatusUnauthorized},
		{"wrong secret", foreign, "", http.StatusUnauthorized},
		{"expired", expired, "", http.StatusUnauthorized},
		{"valid but user deleted", deleted, "", http.StatusUnauthorized},
		{"valid cookie", valid, "", http.StatusOK},
		{"valid bearer", "", valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, "/protected", tt.cookie, tt.bearer)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireAuth_UniformRejectionBody(t *testing.T) {
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	resolver := &stubResolver{identities: map[string]*entity.Identity{}}
	r := newTestRouter(jwtm, resolver)

	orphan, _, err := jwtm.Generate("gone", "gone@x.com", "USER")
	require.NoError(t, err)

	noToken := do(t, r, "/protected", "", "")
	badToken := do(t, r, "/protected", "garbage", "")
	noUser := do(t, r, "/protected", orphan, "")

	// All three failure stages must be indistinguishable to the caller.
	assert.Equal(t, noToken.Code, badToken.Code)
	assert.Equal(t, badToken.Code, noUser.Code)
	assertSameMessage(t, noToken, badToken)
	assertSameMessage(t, badToken, noUser)
}

func assertSameMessage(t *testing.T, a, b *httptest.ResponseRecorder) {
	t.Helper()
	type body struct {
		Message string `json:"message"`
	}
	var ba, bb body
	require.NoError(t, json.Unmarshal(a.Body.Bytes(), &ba))
	require.NoError(t, json.Unmarshal(b.Body.Bytes(), &bb))
	assert.Equal(t, ba.Message, bb.Message)
}

func TestRequireAuth_CookieTakesPrecedence(t *testing.T) {
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	resolver := &stubResolver{identities: map[string]*entity.Identity{
		"u1": {ID: "u1", Email: "a@x.com", Role: entity.RoleUser},
	}}
	r := newTestRouter(jwtm, resolver)

	valid, _, err := jwtm.Generate("u1", "a@x.com", "USER")
	require.NoError(t, err)

	// Bad cookie with a valid bearer still fails: the cookie wins.
	w := do(t, r, "/protected", "garbage", valid)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, "/protected", valid, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth_NeverRejects(t *testing.T) {
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	resolver := &stubResolver{identities: map[string]*entity.Identity{
		"u1": {ID: "u1", Email: "a@x.com", Role: entity.RoleUser},
	}}
	r := newTestRouter(jwtm, resolver)

	valid, _, err := jwtm.Generate("u1", "a@x.com", "USER")
	require.NoError(t, err)
	orphan, _, err := jwtm.Generate("gone", "gone@x.com", "USER")
	require.NoError(t, err)

	for _, cookie := range []string{"", "garbage", orphan} {
		w := do(t, r, "/maybe", cookie, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":null`)
	}

	w := do(t, r, "/maybe", valid, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}

func TestAdminOnly(t *testing.T) {
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	resolver := &stubResolver{identities: map[string]*entity.Identity{
		"u1": {ID: "u1", Email: "a@x.com", Role: entity.RoleUser},
		"u2": {ID: "u2", Email: "b@x.com", Role: entity.RoleAdmin},
	}}
	r := newTestRouter(jwtm, resolver)

	userTok, _, err := jwtm.Generate("u1", "a@x.com", "USER")
	require.NoError(t, err)
	adminTok, _, err := jwtm.Generate("u2", "b@x.com", "ADMIN")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(t, r, "/admin", userTok, "").Code)
	assert.Equal(t, http.StatusOK, do(t, r, "/admin", adminTok, "").Code)
}

func TestAdminOnly_RoleComesFromStoreNotToken(t *testing.T) {
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	// Store says USER even though the token claims ADMIN: demotion after
	// issuance must take effect immediately.
	resolver := &stubResolver{identities: map[string]*entity.Identity{
		"u1": {ID: "u1", Email: "a@x.com", Role: entity.RoleUser},
	}}
	r := newTestRouter(jwtm, resolver)

	tok, _, err := jwtm.Generate("u1", "a@x.com", "ADMIN")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(t, r, "/admin", tok, "").Code)
}

func TestAdminOnly_StandaloneFailsClosed(t *testing.T) {
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	resolver := &stubResolver{identities: map[string]*entity.Identity{
		"u2": {ID: "u2", Email: "b@x.com", Role: entity.RoleAdmin},
	}}
	r := newTestRouter(jwtm, resolver)

	adminTok, _, err := jwtm.Generate("u2", "b@x.com", "ADMIN")
	require.NoError(t, err)

	// Without RequireAuth in front no identity is attached, so even a real
	// admin token is denied.
	assert.Equal(t, http.StatusForbidden, do(t, r, "/admin-standalone", adminTok, "").Code)
}
