package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shrinx/shrinx/database"
	"github.com/shrinx/shrinx/turnstile"
)

type saveRequest struct {
	Path              string `json:"path"`
	Domain            string `json:"domain"`
	RedirectURL       string `json:"redirectUrl"`
	TurnstileResponse string `json:"turnstileResponse"`
}

// SaveLink creates a short link. The endpoint is public by design; when
// Turnstile is enabled in the settings it is gated by a CAPTCHA token
// instead of a session.
func (h *Handler) SaveLink(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields."})
		return
	}

	enabled, err := h.store.GetSetting(c.Request.Context(), database.SettingTurnstileEnabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving URL."})
		return
	}

	if enabled == "true" {
		if req.TurnstileResponse == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing Turnstile token."})
			return
		}

		secret, err := h.store.GetSetting(c.Request.Context(), database.SettingTurnstileSecretKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving URL."})
			return
		}

		if err := h.turnstile.Verify(c.Request.Context(), secret, req.TurnstileResponse); err != nil {
			switch {
			case errors.Is(err, turnstile.ErrMissingSecret):
				log.Error("turnstile secret key is not configured in settings")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server configuration error."})
			case errors.Is(err, turnstile.ErrVerificationFailed):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Captcha verification failed."})
			default:
				log.Error("turnstile verification error", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error verifying captcha."})
			}
			return
		}
	}

	h.createLink(c, req)
}

// CreateLink is the admin variant of SaveLink: same validation and insert,
// but behind the session gate and therefore exempt from the CAPTCHA.
func (h *Handler) CreateLink(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields."})
		return
	}
	h.createLink(c, req)
}

// createLink validates and inserts a link. The existence check is only a
// fast path for a friendly message; the unique constraint on (path, domain)
// is what actually prevents duplicates under concurrent requests.
func (h *Handler) createLink(c *gin.Context, req saveRequest) {
	path := strings.TrimSpace(req.Path)
	redirectURL := strings.TrimSpace(req.RedirectURL)
	if path == "" || req.Domain == "" || redirectURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields."})
		return
	}

	if _, err := h.store.GetLink(c.Request.Context(), path, req.Domain); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "That short URL is already taken."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving URL."})
		return
	}

	if _, err := h.store.CreateLink(c.Request.Context(), path, req.Domain, redirectURL); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "That short URL is already taken."})
			return
		}
		log.Error("failed to save link", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving URL."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListLinks returns all links for the admin panel.
func (h *Handler) ListLinks(c *gin.Context) {
	links, err := h.store.ListLinks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error listing links."})
		return
	}

	type linkEntry struct {
		ID          uint   `json:"id"`
		Path        string `json:"path"`
		Domain      string `json:"domain"`
		RedirectURL string `json:"redirectUrl"`
	}
	entries := make([]linkEntry, 0, len(links))
	for _, l := range links {
		entries = append(entries, linkEntry{
			ID:          l.ID,
			Path:        l.Path,
			Domain:      l.Domain,
			RedirectURL: l.RedirectURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{"links": entries})
}

// DeleteLink removes a link by id.
func (h *Handler) DeleteLink(c *gin.Context) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Link ID is required"})
		return
	}

	if err := h.store.DeleteLink(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting link."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
