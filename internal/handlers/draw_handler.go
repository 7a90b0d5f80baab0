package handlers

import (
	"net/http"

	"github.com/fairwaydraw/draw-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawHandler handles draw engine HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// SimulateRequest carries the experimental value range for a preview
type SimulateRequest struct {
	RangeMin int `json:"rangeMin" binding:"required,min=1"`
	RangeMax int `json:"rangeMax" binding:"required,gtefield=RangeMin"`
}

// Simulate handles POST /draws/simulate
func (h *DrawHandler) Simulate(c *gin.Context) {
	var request SimulateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	preview, err := h.drawService.Simulate(c.Request.Context(), request.RangeMin, request.RangeMax)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// RunRequest carries the run parameters. CycleID is optional; the current
// cycle is used (auto-created on cold start) when absent.
type RunRequest struct {
	CycleID  string `json:"cycleId"`
	RangeMin int    `json:"rangeMin" binding:"required,min=1"`
	RangeMax int    `json:"rangeMax" binding:"required,gtefield=RangeMin"`
}

// Run handles POST /draws/run
func (h *DrawHandler) Run(c *gin.Context) {
	var request RunRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cycleID *primitive.ObjectID
	if request.CycleID != "" {
		id, err := primitive.ObjectIDFromHex(request.CycleID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cycle ID format"})
			return
		}
		cycleID = &id
	}

	cycle, err := h.drawService.Run(c.Request.Context(), cycleID, request.RangeMin, request.RangeMax)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cycle)
}

// Publish handles POST /draws/:id/publish
func (h *DrawHandler) Publish(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	cycle, err := h.drawService.Publish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cycle published successfully", "cycle": cycle})
}

// GetCurrentCycle handles GET /draws/current
func (h *DrawHandler) GetCurrentCycle(c *gin.Context) {
	cycle, err := h.drawService.GetCurrentCycle(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cycle)
}

// GetCycleByID handles GET /draws/:id
func (h *DrawHandler) GetCycleByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	cycle, err := h.drawService.GetCycleByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cycle)
}

// GetCycles handles GET /draws
func (h *DrawHandler) GetCycles(c *gin.Context) {
	cycles, err := h.drawService.GetCycles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cycles)
}
