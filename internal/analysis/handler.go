package analysis

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Clssp/New-Radas-Local/internal/market"
	"github.com/Clssp/New-Radas-Local/internal/snapshot"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type analyzeRequest struct {
	Term         string `json:"term" binding:"required"`
	Location     string `json:"location" binding:"required"`
	BusinessType string `json:"business_type"`
	Limit        int    `json:"limit"`
	Force        bool   `json:"force"`
}

// Analyze handles POST /markets/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	userID := c.GetString("userID")

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term and location are required"})
		return
	}

	result, err := h.service.Run(c.Request.Context(), RunRequest{
		UserID:       userID,
		Term:         req.Term,
		Location:     req.Location,
		BusinessType: req.BusinessType,
		Limit:        req.Limit,
		Force:        req.Force,
		Progress: func(phase string, percent int) {
			log.Printf("[PIPELINE] user %s: %s (%d%%)", userID, phase, percent)
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrQuotaExceeded):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily analysis limit reached"})
		case errors.Is(err, ErrNoCompetitors):
			c.JSON(http.StatusNotFound, gin.H{"error": "no competitors found for this search"})
		default:
			log.Printf("❌ [PIPELINE] run failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// SWOT handles POST /markets/:id/swot.
func (h *Handler) SWOT(c *gin.Context) {
	userID := c.GetString("userID")

	marketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market id"})
		return
	}

	swot, err := h.service.GenerateSWOT(c.Request.Context(), userID, marketID)
	if err != nil {
		switch {
		case errors.Is(err, market.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your market"})
		case errors.Is(err, market.ErrNotFound), errors.Is(err, snapshot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "market has no analysis yet"})
		case errors.Is(err, ErrQuotaExceeded):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily analysis limit reached"})
		default:
			log.Printf("❌ [SWOT] generation failed for market %d: %v", marketID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "swot generation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, swot)
}
