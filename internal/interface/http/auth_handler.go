package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/interface/middleware"
	"github.com/annonsera/backend/pkg/helpers"
	"github.com/annonsera/backend/pkg/response"
	"github.com/annonsera/backend/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "email already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	token, exp, err := h.Svc.IssueToken(u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	h.Cookies.SetSession(c, token, exp)
	response.Success(c, http.StatusCreated, gin.H{"user": u, "token": token}, "registered", nil)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, exp, err := h.Svc.IssueToken(u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetSession(c, token, exp)
	response.Success(c, http.StatusOK, gin.H{"user": u, "token": token}, "login successful", nil)
}

// Logout POST /auth/logout — clears the cookie regardless of auth state.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Session GET /auth/session — reports who, if anyone, the request resolves
// to. Mounted behind OptionalAuth so anonymous callers get a 200 with a null
// user instead of a rejection.
func (h *AuthHandler) Session(c *gin.Context) {
	if ident, ok := middleware.IdentityFrom(c); ok {
		response.Success(c, http.StatusOK, gin.H{"user": ident, "authenticated": true}, "session", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": nil, "authenticated": false}, "session", nil)
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": ident}, "me", nil)
}
