package handlers

import (
	"errors"
	"log"
	"net/http"

	"college-api/models"
	"college-api/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService *services.UploadService
	publicBaseURL string
}

func NewUploadHandler(upload *services.UploadService, publicBaseURL string) *UploadHandler {
	return &UploadHandler{
		uploadService: upload,
		publicBaseURL: publicBaseURL,
	}
}

// Upload принимает multipart-форму: subject, module, type и файл.
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required"})
		return
	}

	subject := c.PostForm("subject")
	module := c.PostForm("module")
	declaredType := c.PostForm("type")

	rec, err := h.uploadService.Upload(c.Request.Context(), subject, module, declaredType, header)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: vErr.Reason})
			return
		}
		log.Printf("Upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload file",
			Message: err.Error(),
		})
		return
	}

	// В ответе downloadUrl абсолютный, в документе хранится относительный
	rec.DownloadURL = h.publicBaseURL + rec.DownloadURL

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "file uploaded successfully",
		"filename": rec.Filename,
		"file":     rec,
	})
}
