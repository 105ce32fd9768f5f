package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// CookieManager writes and clears the session cookie with consistent
// attributes (HttpOnly, SameSite=Lax, Secure in production).
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// SetSession stores the session token cookie until exp.
func (m *CookieManager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// Clear removes the session cookie.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

// maxAgeFrom converts an expiry into a cookie MaxAge. A non-positive
// remainder returns -1 so the cookie is deleted instead of becoming a
// session cookie (Gin treats MaxAge 0 as "no attribute").
func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec <= 0 {
		return -1
	}
	return sec
}
