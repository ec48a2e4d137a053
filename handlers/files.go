package handlers

import (
	"errors"
	"log"
	"net/http"

	"college-api/models"
	"college-api/services"
	"college-api/store"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	store         *store.Store
	uploadService *services.UploadService
	cacheService  *services.ListingCache
	storage       services.BlobStorage
}

func NewFileHandler(st *store.Store, upload *services.UploadService, cache *services.ListingCache, storage services.BlobStorage) *FileHandler {
	return &FileHandler{
		store:         st,
		uploadService: upload,
		cacheService:  cache,
		storage:       storage,
	}
}

// GetData возвращает всё дерево файлов.
func (h *FileHandler) GetData(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.All())
}

// GetTeachers возвращает таблицу учётных данных преподавателей.
func (h *FileHandler) GetTeachers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Teachers())
}

// GetModules возвращает таблицу учётных данных модулей.
func (h *FileHandler) GetModules(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Modules())
}

// GetFiles возвращает файлы предмета и модуля.
func (h *FileHandler) GetFiles(c *gin.Context) {
	subject := c.Param("subject")
	module := c.Param("module")

	if cached, found := h.cacheService.GetFiles(subject, module); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	files := h.store.Files(subject, module)
	h.cacheService.SetFiles(subject, module, files)
	c.JSON(http.StatusOK, files)
}

// GetTeacherFiles возвращает непустые модули предмета.
func (h *FileHandler) GetTeacherFiles(c *gin.Context) {
	subject := c.Param("subject")

	if cached, found := h.cacheService.GetSubject(subject); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	files := h.store.SubjectFiles(subject)
	h.cacheService.SetSubject(subject, files)
	c.JSON(http.StatusOK, files)
}

type renameRequest struct {
	FileID  string `json:"fileId" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Module  string `json:"module" binding:"required"`
	NewName string `json:"newName" binding:"required"`
}

// RenameFile меняет отображаемое имя файла.
func (h *FileHandler) RenameFile(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.uploadService.Rename(req.Subject, req.Module, req.FileID, req.NewName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "file not found"})
			return
		}
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: vErr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to rename file",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type deleteRequest struct {
	FileID  string `json:"fileId" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Module  string `json:"module" binding:"required"`
}

// DeleteFile удаляет запись и физический файл.
func (h *FileHandler) DeleteFile(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), req.Subject, req.Module, req.FileID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete file",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// InvalidateCache сбрасывает кэш списков целиком.
func (h *FileHandler) InvalidateCache(c *gin.Context) {
	h.cacheService.Flush()
	c.JSON(http.StatusOK, gin.H{"message": "cache invalidated successfully"})
}

// Download отдаёт файл из объектного хранилища (для STORAGE_BACKEND=minio;
// локальный каталог раздаётся статикой напрямую).
func (h *FileHandler) Download(c *gin.Context) {
	name := c.Param("filename")

	object, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		log.Printf("Failed to open %s: %v", name, err)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
		return
	}
	defer object.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", object, map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	})
}
