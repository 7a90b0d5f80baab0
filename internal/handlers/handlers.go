package handlers

import (
	"errors"
	"net/http"

	"github.com/fairwaydraw/draw-backend/internal/draw"
	"github.com/fairwaydraw/draw-backend/internal/middleware"
	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"github.com/fairwaydraw/draw-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps the engine's error taxonomy onto HTTP statuses:
// precondition failures 422, concurrency conflicts 409, invalid lifecycle
// transitions 409, missing records 404, unreachable collaborators 503.
// Every rejection carries the reason verbatim.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draw.ErrNoScores),
		errors.Is(err, draw.ErrInsufficientDiversity),
		errors.Is(err, draw.ErrBadTierSplit):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "category": "precondition"})
	case errors.Is(err, repositories.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "category": "conflict", "retryable": true})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "category": "invalid_transition"})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "category": "not_found"})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "category": "upstream_unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// operatorID returns the authenticated operator from the request context
func operatorID(c *gin.Context) string {
	return c.GetString(middleware.OperatorIDKey)
}
