package handlers

import (
	"net/http"

	"github.com/fairwaydraw/draw-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScoreHandler handles score entry HTTP requests
type ScoreHandler struct {
	scoreService services.ScoreService
}

// NewScoreHandler creates a new ScoreHandler
func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// SubmitScoreRequest carries one score submission
type SubmitScoreRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Value    int    `json:"value" binding:"required,min=1"`
	Source   string `json:"source"`
}

// SubmitScore handles POST /scores
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	var request SubmitScoreRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	memberID, err := primitive.ObjectIDFromHex(request.MemberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}
	entry, err := h.scoreService.SubmitScore(c.Request.Context(), memberID, request.Value, request.Source)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetMemberScores handles GET /scores/member/:id
func (h *ScoreHandler) GetMemberScores(c *gin.Context) {
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}
	entries, err := h.scoreService.GetCurrentScores(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
