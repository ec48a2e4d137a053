package handlers

import (
	"errors"
	"net/http"

	"college-api/models"
	"college-api/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	store *store.Store
}

func NewAuthHandler(st *store.Store) *AuthHandler {
	return &AuthHandler{store: st}
}

type moduleLoginRequest struct {
	Subject  string `json:"subject"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ModuleLogin проверяет логин модуля. Ответ — только success, без
// уточнения, что именно не совпало.
func (h *AuthHandler) ModuleLogin(c *gin.Context) {
	var req moduleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	ok := h.store.VerifyModuleLogin(req.Subject, req.Username, req.Password)
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

type teacherLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TeacherLogin при успехе возвращает предмет преподавателя.
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var req teacherLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	subject, ok := h.store.VerifyTeacherLogin(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subject": subject})
}

type updatePasswordRequest struct {
	Teacher         string `json:"teacher"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdatePassword меняет пароль преподавателя.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.UpdateTeacherPassword(req.Teacher, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, store.ErrUnauthorized) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "current password is wrong"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update password",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
