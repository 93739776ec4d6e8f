package notifications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.GET("/notifications/unread", h.UnreadCount)
	rg.POST("/notifications/:id/read", h.MarkRead)
	rg.POST("/notifications/read-all", h.MarkAllRead)
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	items, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.FromError(c, "list notifications", err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "count unread notifications", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid notification id")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		response.FromError(c, "mark notification read", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": id})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.FromError(c, "mark all notifications read", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": "all"})
}
