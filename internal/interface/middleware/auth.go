package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/internal/domain/entity"
	"github.com/annonsera/backend/pkg/helpers"
	"github.com/annonsera/backend/pkg/response"
)

const (
	// CtxIdentityKey holds the resolved *entity.Identity for the request.
	CtxIdentityKey = "identity"
	// CtxUserIDKey holds the resolved user id for handlers that only need it.
	CtxUserIDKey = "userID"
)

// unauthorizedMessage is the single body for every required-auth rejection.
// Missing token, bad token and unresolved user stay distinct in logs only,
// so callers cannot probe which stage failed.
const unauthorizedMessage = "authentication required"

// IdentityResolver maps a verified token claim back to a live user record.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (*entity.Identity, error)
}

// extractToken returns the session token from the cookie or, failing that,
// the Authorization Bearer header. Cookie takes precedence.
func extractToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.SessionCookieName); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// resolveIdentity runs the verify-then-resolve pipeline and returns the
// identity, or "" reason on success.
func resolveIdentity(c *gin.Context, jwt *helpers.JWTManager, resolver IdentityResolver) (*entity.Identity, string) {
	token := extractToken(c)
	if token == "" {
		return nil, "no token"
	}
	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, "invalid token"
	}
	ident, err := resolver.Resolve(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, "user not resolved"
	}
	return ident, ""
}

func attach(c *gin.Context, ident *entity.Identity) {
	c.Set(CtxIdentityKey, ident)
	c.Set(CtxUserIDKey, ident.ID)
}

// RequireAuth rejects requests without a resolvable identity and attaches the
// identity to the context otherwise.
func RequireAuth(jwt *helpers.JWTManager, resolver IdentityResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, reason := resolveIdentity(c, jwt, resolver)
		if ident == nil {
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"reason": reason,
					"path":   c.Request.URL.Path,
				}).Debug("auth rejected")
			}
			response.Error[any](c, http.StatusUnauthorized, unauthorizedMessage, nil)
			c.Abort()
			return
		}
		attach(c, ident)
		c.Next()
	}
}

// OptionalAuth attaches an identity when one resolves and otherwise lets the
// request through anonymously. It never rejects.
func OptionalAuth(jwt *helpers.JWTManager, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, _ := resolveIdentity(c, jwt, resolver); ident != nil {
			attach(c, ident)
		}
		c.Next()
	}
}

// AdminOnly requires an attached identity with the admin role. It composes
// after RequireAuth; run standalone it fails closed because no identity is
// attached.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok || !ident.IsAdmin() {
			response.Error[any](c, http.StatusForbidden, "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity attached by RequireAuth or OptionalAuth.
func IdentityFrom(c *gin.Context) (*entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*entity.Identity)
	return ident, ok
}
