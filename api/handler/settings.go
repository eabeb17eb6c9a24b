package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shrinx/shrinx/database"
)

// GetSettings returns all settings together with the domain registry, the
// full state the admin settings page renders from.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.store.AllSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading settings."})
		return
	}

	domains, err := h.store.ListDomains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading settings."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
		"domains":  domainEntries(domains),
	})
}

type putSettingsRequest struct {
	TurnstileEnabled   bool    `json:"turnstile_enabled"`
	TurnstileSiteKey   *string `json:"turnstile_site_key"`
	TurnstileSecretKey *string `json:"turnstile_secret_key"`
	PrimaryDomain      *string `json:"primary_domain"`
}

// PutSettings upserts the provided settings. turnstile_enabled is always
// written from its boolean; the other keys are only touched when present in
// the request body.
func (h *Handler) PutSettings(c *gin.Context) {
	var req putSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	enabled := "false"
	if req.TurnstileEnabled {
		enabled = "true"
	}
	updates := map[string]*string{
		database.SettingTurnstileEnabled:   &enabled,
		database.SettingTurnstileSiteKey:   req.TurnstileSiteKey,
		database.SettingTurnstileSecretKey: req.TurnstileSecretKey,
		database.SettingPrimaryDomain:      req.PrimaryDomain,
	}
	for key, value := range updates {
		if value == nil {
			continue
		}
		if err := h.store.SetSetting(c.Request.Context(), key, *value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving settings."})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
