package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gradhunt/gradboard-backend/internal/config"
	"github.com/gradhunt/gradboard-backend/internal/response"
	"github.com/gradhunt/gradboard-backend/internal/service"
)

// UploadHandler handles logo uploads and signed asset retrieval.
type UploadHandler struct {
	cfg            *config.Config
	storageService *service.StorageService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(cfg *config.Config, storageService *service.StorageService) *UploadHandler {
	return &UploadHandler{cfg: cfg, storageService: storageService}
}

// UploadLogo godoc
// POST /api/v1/admin/upload/logo
// Accepts a multipart "logo" image, stores it privately, and returns both
// the durable storage path and a time-boxed signed URL for preview.
func (h *UploadHandler) UploadLogo(c *gin.Context) {
	// Hard cap the body before multipart parsing touches it. The service
	// re-checks the declared part size.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes+4096)

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	path, err := h.storageService.SaveLogo(file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	signedURL, err := h.storageService.SignedURL(path, h.cfg.AssetURLExpiry)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"path":       path,
		"signed_url": signedURL,
		"expires_in": int(h.cfg.AssetURLExpiry.Seconds()),
	})
}

// ServeAsset godoc
// GET /api/v1/assets/*path
// Serves a privately stored asset when the exp/sig pair checks out.
func (h *UploadHandler) ServeAsset(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	exp, err := strconv.ParseInt(c.Query("exp"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusForbidden, response.ErrAssetSignature)
		return
	}

	fsPath, err := h.storageService.VerifySignedPath(path, exp, c.Query("sig"))
	if err != nil {
		response.Fail(c, http.StatusForbidden, response.ErrAssetSignature)
		return
	}

	c.File(fsPath)
}
