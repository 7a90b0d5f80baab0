package handlers

import (
	"net/http"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// TierConfigHandler handles prize pool configuration HTTP requests
type TierConfigHandler struct {
	tierConfigService services.TierConfigService
}

// NewTierConfigHandler creates a new TierConfigHandler
func NewTierConfigHandler(tierConfigService services.TierConfigService) *TierConfigHandler {
	return &TierConfigHandler{tierConfigService: tierConfigService}
}

// GetConfig handles GET /tier-config
func (h *TierConfigHandler) GetConfig(c *gin.Context) {
	config, err := h.tierConfigService.GetConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// UpdateConfigRequest carries the admin-editable pool settings
type UpdateConfigRequest struct {
	ContributionCents int64 `json:"contributionCents" binding:"required,min=0"`
	Tier5Percent      int   `json:"tier5Percent" binding:"required,min=0,max=100"`
	Tier4Percent      int   `json:"tier4Percent" binding:"required,min=0,max=100"`
	Tier3Percent      int   `json:"tier3Percent" binding:"required,min=0,max=100"`
	JackpotCapCents   int64 `json:"jackpotCapCents" binding:"min=0"`
}

// UpdateConfig handles PUT /tier-config
func (h *TierConfigHandler) UpdateConfig(c *gin.Context) {
	var request UpdateConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config := &models.TierConfig{
		ContributionCents: request.ContributionCents,
		Tier5Percent:      request.Tier5Percent,
		Tier4Percent:      request.Tier4Percent,
		Tier3Percent:      request.Tier3Percent,
		JackpotCapCents:   request.JackpotCapCents,
	}
	updated, err := h.tierConfigService.UpdateConfig(c.Request.Context(), config, operatorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
