package market

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Clssp/New-Radas-Local/internal/snapshot"
)

// SnapshotReader is the slice of the snapshot service the market
// endpoints need for dashboard enrichment.
type SnapshotReader interface {
	Latest(ctx context.Context, marketID int64) (*snapshot.Snapshot, error)
	KPIHistory(ctx context.Context, marketID int64) ([]snapshot.KPIEntry, error)
	LatestDates(ctx context.Context, marketIDs []int64) (map[int64]time.Time, error)
}

type Handler struct {
	service   *Service
	snapshots SnapshotReader
}

func NewHandler(service *Service, snapshots SnapshotReader) *Handler {
	return &Handler{service: service, snapshots: snapshots}
}

// List handles GET /markets: every market the caller owns, each with the
// date of its most recent analysis.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	markets, err := h.service.ListMyMarkets(c.Request.Context(), userID)
	if err != nil {
		log.Printf("❌ [MARKET] list failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list markets"})
		return
	}

	ids := make([]int64, 0, len(markets))
	for _, m := range markets {
		ids = append(ids, m.ID)
	}
	dates, err := h.snapshots.LatestDates(c.Request.Context(), ids)
	if err != nil {
		// Listing still works without the enrichment.
		log.Printf("[MARKET] latest-analysis dates unavailable: %v", err)
		dates = map[int64]time.Time{}
	}

	rows := make([]Overview, 0, len(markets))
	for _, m := range markets {
		row := Overview{Market: *m}
		if d, ok := dates[m.ID]; ok {
			row.LastAnalyzedAt = &d
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{"markets": rows})
}

// Get handles GET /markets/:id: the market plus its latest snapshot payload.
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userID")
	marketID, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.service.GetOwned(c.Request.Context(), marketID, userID)
	if err != nil {
		respondOwnershipError(c, marketID, err)
		return
	}

	latest, err := h.snapshots.Latest(c.Request.Context(), marketID)
	if err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		log.Printf("❌ [MARKET] latest snapshot for %d: %v", marketID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load analysis"})
		return
	}

	resp := gin.H{"market": m}
	if latest != nil {
		resp["snapshot"] = latest
	}
	c.JSON(http.StatusOK, resp)
}

// History handles GET /markets/:id/history: KPI rows oldest first, for
// the dashboard trend chart.
func (h *Handler) History(c *gin.Context) {
	userID := c.GetString("userID")
	marketID, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.service.GetOwned(c.Request.Context(), marketID, userID); err != nil {
		respondOwnershipError(c, marketID, err)
		return
	}

	entries, err := h.snapshots.KPIHistory(c.Request.Context(), marketID)
	if err != nil {
		log.Printf("❌ [MARKET] kpi history for %d: %v", marketID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Delete handles DELETE /markets/:id. Snapshots and KPI rows go with it.
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	marketID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), marketID, userID); err != nil {
		respondOwnershipError(c, marketID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "market deleted"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market id"})
		return 0, false
	}
	return id, true
}

func respondOwnershipError(c *gin.Context, marketID int64, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not your market"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found"})
	default:
		log.Printf("❌ [MARKET] lookup %d: %v", marketID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "market lookup failed"})
	}
}
