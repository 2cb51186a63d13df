package quota

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Usage handles GET /me/usage: today's consumption without admitting a run.
func (h *Handler) Usage(c *gin.Context) {
	userID := c.GetString("userID")

	usage, err := h.service.Peek(c.Request.Context(), userID)
	if err != nil {
		log.Printf("❌ [QUOTA] usage read for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read usage"})
		return
	}

	c.JSON(http.StatusOK, usage)
}
