// Package auth implements the admin session: login and logout handlers and
// the middleware gating all admin routes.
package auth

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shrinx/shrinx/database"
)

// Session keys.
const (
	sessionKeyLoggedIn = "is_logged_in"
	sessionKeyUsername = "username"
)

// Handler provides login and logout against the local users table.
type Handler struct {
	store database.Store
}

// NewHandler creates a new auth handler.
func NewHandler(store database.Store) *Handler {
	return &Handler{store: store}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the users table and establishes a session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing credentials."})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed."})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if !database.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyLoggedIn, true)
	session.Set(sessionKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout clears the session.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RefreshUsername updates the session identity after a username change so
// the caller stays logged in under the new name.
func RefreshUsername(c *gin.Context, username string) error {
	session := sessions.Default(c)
	session.Set(sessionKeyLoggedIn, true)
	session.Set(sessionKeyUsername, username)
	return session.Save()
}
