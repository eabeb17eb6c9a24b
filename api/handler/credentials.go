package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shrinx/shrinx/api/auth"
	"github.com/shrinx/shrinx/api/models"
	"github.com/shrinx/shrinx/database"
)

type changeCredentialsRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewUsername     string `json:"newUsername"`
	NewPassword     string `json:"newPassword"`
}

// ChangeCredentials updates the admin username and/or password. The caller
// re-authenticates with the current password; on a username change the
// session is refreshed in place so the caller stays logged in.
func (h *Handler) ChangeCredentials(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var req changeCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.CurrentPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is required"})
		return
	}
	if req.NewUsername == "" && req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password or new username is required"})
		return
	}

	record, err := h.store.GetUserByUsername(c.Request.Context(), user.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error changing credentials."})
		return
	}

	if !database.CheckPassword(record.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	var newHash string
	if req.NewPassword != "" {
		newHash, err = database.HashPassword(req.NewPassword)
		if err != nil {
			log.Error("failed to hash new password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error changing credentials."})
			return
		}
	}

	if err := h.store.UpdateUserCredentials(c.Request.Context(), record.ID, req.NewUsername, newHash); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error changing credentials."})
		return
	}

	if req.NewUsername != "" && req.NewUsername != user.Username {
		if err := auth.RefreshUsername(c, req.NewUsername); err != nil {
			log.Error("failed to refresh session username", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error changing credentials."})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
