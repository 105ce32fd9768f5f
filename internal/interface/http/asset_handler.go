package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/pkg/response"
)

type AssetHandler struct {
	Svc    *application.AssetService
	Logger *logrus.Logger
}

func NewAssetHandler(svc *application.AssetService, logger *logrus.Logger) *AssetHandler {
	return &AssetHandler{Svc: svc, Logger: logger}
}

// Upload POST /assets — multipart field "file".
func (h *AssetHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "no file attached (field 'file')", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	asset, err := h.Svc.Upload(c.Request.Context(), fh.Filename, mime, fh.Size, f)
	if err != nil {
		h.Logger.WithError(err).WithField("key", fh.Filename).Error("upload failed")
		response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"asset": asset}, "uploaded", nil)
}

// List GET /assets
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list assets failed")
		response.Error[any](c, http.StatusInternalServerError, "could not fetch assets", nil)
		return
	}
	response.Success(c, http.StatusOK, assets, "assets", nil)
}

// ListObjects GET /assets/objects — raw bucket listing.
func (h *AssetHandler) ListObjects(c *gin.Context) {
	objects, err := h.Svc.ListObjects(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list objects failed")
		response.Error[any](c, http.StatusInternalServerError, "list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": objects}, "objects", nil)
}

// DownloadURL GET /assets/:id/url — short-lived presigned link.
func (h *AssetHandler) DownloadURL(c *gin.Context) {
	url, err := h.Svc.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrAssetNotFound) {
			response.Error[any](c, http.StatusNotFound, "asset not found", nil)
			return
		}
		h.Logger.WithError(err).Error("presign failed")
		response.Error[any](c, http.StatusInternalServerError, "could not generate download URL", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "download url", nil)
}

// Delete DELETE /assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrAssetNotFound) {
			response.Error[any](c, http.StatusNotFound, "asset not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("asset_id", id).Error("delete failed")
		response.Error[any](c, http.StatusInternalServerError, "delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": id}, "asset deleted", nil)
}
