package handlers

import (
	"errors"
	"net/http"

	"bizconsole_backend/internal/imagehost"
	"bizconsole_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UploadHandler forwards file uploads to the image host.
type UploadHandler struct {
	imageHost *imagehost.Client
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(client *imagehost.Client) *UploadHandler {
	return &UploadHandler{imageHost: client}
}

// UploadImage accepts one multipart file and returns the hosted URL for use
// as a file-type field value.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"A 'file' form field is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.LogError(err, "UploadImage: failed to open uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to read uploaded file"))
		return
	}
	defer file.Close()

	url, err := h.imageHost.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		utils.LogError(err, "UploadImage: Error from imageHost.Upload")
		if errors.Is(err, imagehost.ErrNotConfigured) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeInternalServerError,
				"Image uploads are not configured"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeInternalServerError,
				"Image host rejected the upload"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
