package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/internal/domain/repository"
	"github.com/annonsera/backend/pkg/response"
)

type AdminHandler struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewAdminHandler(users repository.UserRepository, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Logger: logger}
}

// ListUsers GET /admin/users — password hashes never serialize.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}
