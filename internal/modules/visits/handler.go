package visits

import (
	"net/http"
	"time"

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
	rg.GET("/visits", h.List)
	rg.POST("/visits", h.Create)
	rg.POST("/visits/refresh", h.Refresh)
	rg.GET("/visits/recent", h.Recent)
	rg.DELETE("/visits/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "log visit", err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), true); err != nil {
		response.FromError(c, "refresh visits", err)
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Recent(c *gin.Context) {
	window := DefaultRecentWindow
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "window must be a positive duration such as 24h")
			return
		}
		window = parsed
	}
	response.Success(c, http.StatusOK, h.service.Recent(time.Now(), window))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid visit id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "delete visit", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
