package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/interface/middleware"
	"github.com/annonsera/backend/pkg/response"
	"github.com/annonsera/backend/pkg/validation"
)

type CampaignHandler struct {
	Svc    *application.CampaignService
	Logger *logrus.Logger
}

func NewCampaignHandler(svc *application.CampaignService, logger *logrus.Logger) *CampaignHandler {
	return &CampaignHandler{Svc: svc, Logger: logger}
}

type createCampaignRequest struct {
	Name      string    `json:"name" binding:"required,min=2"`
	City      string    `json:"city" binding:"required,min=2"`
	RadiusKm  int       `json:"radiusKm" binding:"required,gt=0"`
	BudgetKr  int       `json:"budgetKr" binding:"required,gt=0"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// Create POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	campaign, err := h.Svc.Create(c.Request.Context(), ident.ID, application.CreateCampaignInput{
		Name:      req.Name,
		City:      req.City,
		RadiusKm:  req.RadiusKm,
		BudgetKr:  req.BudgetKr,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create campaign failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"campaign": campaign, "user": ident}, "campaign created", nil)
}

// List GET /campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	campaigns, err := h.Svc.ListForUser(c.Request.Context(), ident.ID)
	if err != nil {
		h.Logger.WithError(err).Error("list campaigns failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, campaigns, "campaigns", nil)
}

// Get GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	detail, err := h.Svc.GetDetail(c.Request.Context(), c.Param("id"), ident.ID)
	if err != nil {
		if errors.Is(err, application.ErrCampaignNotFound) {
			response.Error[any](c, http.StatusNotFound, "campaign not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get campaign failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, detail, "campaign", nil)
}
