package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Clssp/New-Radas-Local/internal/settings"
)

type Handler struct {
	repo     Repository
	settings *settings.Service
}

func NewHandler(repo Repository, settingsSvc *settings.Service) *Handler {
	return &Handler{repo: repo, settings: settingsSvc}
}

// Stats handles GET /admin/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		log.Printf("❌ [ADMIN] stats query: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /admin/users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("❌ [ADMIN] user listing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type updateUserRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateUser handles PATCH /admin/users/:id. Deactivated accounts keep
// their data but can no longer log in.
func (h *Handler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
		return
	}

	if err := h.repo.SetUserActive(c.Request.Context(), userID, *req.IsActive); err != nil {
		log.Printf("❌ [ADMIN] update user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

type updateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// UpdateSetting handles PUT /admin/settings/:name. Takes effect on the
// next read once the short settings cache expires.
func (h *Handler) UpdateSetting(c *gin.Context) {
	name := c.Param("name")

	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	if err := h.settings.Update(c.Request.Context(), name, req.Value); err != nil {
		log.Printf("❌ [ADMIN] update setting %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update setting"})
		return
	}

	log.Printf("✅ [ADMIN] setting %s updated", name)
	c.JSON(http.StatusOK, gin.H{"message": "setting updated"})
}
