package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shrinx/shrinx/database"
)

type domainEntry struct {
	ID     uint   `json:"id"`
	Domain string `json:"domain"`
}

func domainEntries(domains []database.Domain) []domainEntry {
	entries := make([]domainEntry, 0, len(domains))
	for _, d := range domains {
		entries = append(entries, domainEntry{ID: d.ID, Domain: d.Name})
	}
	return entries
}

// Domains returns the registered domain names, for populating the public
// link creation form.
func (h *Handler) Domains(c *gin.Context) {
	domains, err := h.store.ListDomains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error listing domains."})
		return
	}

	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, d.Name)
	}

	c.JSON(http.StatusOK, gin.H{"domains": names})
}

// AdminDomains returns the full registry entries for the admin panel.
func (h *Handler) AdminDomains(c *gin.Context) {
	domains, err := h.store.ListDomains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing domains."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"domains": domainEntries(domains)})
}

// AddDomain registers a new domain.
func (h *Handler) AddDomain(c *gin.Context) {
	var req struct {
		Domain string `json:"domain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Domain is required"})
		return
	}

	if _, err := h.store.CreateDomain(c.Request.Context(), req.Domain); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Domain already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding domain."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteDomain removes a domain from the registry by id. Links referencing
// the domain are kept; they simply stop resolving.
func (h *Handler) DeleteDomain(c *gin.Context) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Domain ID is required"})
		return
	}

	if err := h.store.DeleteDomain(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting domain."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
