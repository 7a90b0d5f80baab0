package handlers

import (
	"net/http"

	"github.com/fairwaydraw/draw-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerHandler handles payout ledger and export HTTP requests
type WinnerHandler struct {
	winnerService services.WinnerService
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(winnerService services.WinnerService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService}
}

// GetCycleWinners handles GET /draws/:id/winners
func (h *WinnerHandler) GetCycleWinners(c *gin.Context) {
	cycleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	winners, err := h.winnerService.GetWinnersByCycleID(c.Request.Context(), cycleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}

// ExportCycleWinners handles GET /draws/:id/winners/export?format=csv|xlsx
func (h *WinnerHandler) ExportCycleWinners(c *gin.Context) {
	cycleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		data, err := h.winnerService.ExportWinnersCSV(c.Request.Context(), cycleID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=winners.csv")
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.winnerService.ExportWinnersXLSX(c.Request.Context(), cycleID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=winners.xlsx")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format (csv or xlsx)"})
	}
}

// VerifyWinner handles POST /winners/:id/verify
func (h *WinnerHandler) VerifyWinner(c *gin.Context) {
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	entry, err := h.winnerService.VerifyWinner(c.Request.Context(), entryID, operatorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// MarkPaidRequest carries the optional payment reference
type MarkPaidRequest struct {
	Reference string `json:"reference"`
}

// MarkPaid handles POST /winners/:id/pay
func (h *WinnerHandler) MarkPaid(c *gin.Context) {
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var request MarkPaidRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.winnerService.MarkPaid(c.Request.Context(), entryID, operatorID(c), request.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
