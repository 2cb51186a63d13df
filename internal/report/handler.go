package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Clssp/New-Radas-Local/internal/market"
	"github.com/Clssp/New-Radas-Local/internal/snapshot"
)

type MarketService interface {
	GetOwned(ctx context.Context, marketID int64, userID string) (*market.Market, error)
}

type SnapshotService interface {
	Latest(ctx context.Context, marketID int64) (*snapshot.Snapshot, error)
}

// Uploader archives generated reports to object storage. Optional.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body *bytes.Reader) (string, error)
}

type Handler struct {
	markets   MarketService
	snapshots SnapshotService
	archive   Uploader // nil when R2 is not configured
}

func NewHandler(markets MarketService, snapshots SnapshotService, archive Uploader) *Handler {
	return &Handler{markets: markets, snapshots: snapshots, archive: archive}
}

// Download handles GET /markets/:id/report: renders the latest snapshot
// as a PDF and streams it to the caller.
func (h *Handler) Download(c *gin.Context) {
	userID := c.GetString("userID")

	marketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market id"})
		return
	}

	m, err := h.markets.GetOwned(c.Request.Context(), marketID, userID)
	if err != nil {
		switch {
		case errors.Is(err, market.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your market"})
		case errors.Is(err, market.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "market not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "market lookup failed"})
		}
		return
	}

	latest, err := h.snapshots.Latest(c.Request.Context(), marketID)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "market has no analysis yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load analysis"})
		return
	}

	pdf, err := Generate(latest)
	if err != nil {
		log.Printf("❌ [REPORT] render for market %d: %v", marketID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}

	// Archival is best-effort: a storage hiccup never blocks the download.
	if h.archive != nil {
		key := fmt.Sprintf("reports/%s/market-%d-%s.pdf",
			userID, marketID, time.Now().Format("20060102-150405"))
		if url, err := h.archive.Upload(c.Request.Context(), key, "application/pdf", bytes.NewReader(pdf)); err != nil {
			log.Printf("[REPORT] archive upload failed: %v", err)
		} else {
			log.Printf("✅ [REPORT] archived at %s", url)
		}
	}

	filename := fmt.Sprintf("radar-%s-%s.pdf", slug(m.Term), time.Now().Format(time.DateOnly))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}
