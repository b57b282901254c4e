package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func (h *handlers) getShippingSettings(c *gin.Context) {
	cfg, err := h.deps.Settings.GetShipping(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipping settings not configured"})
			return
		}
		h.logger.Printf("settings: get shipping: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type shippingSettingsRequest struct {
	DefaultPriceCents   int64 `json:"defaultPriceCents"`
	FreeShippingEnabled bool  `json:"freeShippingEnabled"`
	FreeThresholdCents  int64 `json:"freeThresholdCents"`
}

func (h *handlers) putShippingSettings(c *gin.Context) {
	if h.deps.AdminToken == "" || c.GetHeader("X-Admin-Token") != h.deps.AdminToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin token required"})
		return
	}

	var in shippingSettingsRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if in.DefaultPriceCents < 0 || in.FreeThresholdCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prices must be non-negative"})
		return
	}

	cfg, err := h.deps.Settings.UpsertShipping(c.Request.Context(), domain.ShippingSettings{
		DefaultPriceCents:   in.DefaultPriceCents,
		FreeShippingEnabled: in.FreeShippingEnabled,
		FreeThresholdCents:  in.FreeThresholdCents,
	})
	if err != nil {
		h.logger.Printf("settings: upsert shipping: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
