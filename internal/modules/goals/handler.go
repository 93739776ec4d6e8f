package goals

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
	rg.GET("/goals", h.List)
	rg.POST("/goals", h.Create)
	rg.POST("/goals/refresh", h.Refresh)
	rg.GET("/goals/progress", h.Progress)
	rg.GET("/goals/:id", h.Get)
	rg.PATCH("/goals/:id", h.Update)
	rg.DELETE("/goals/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "create goal", err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), true); err != nil {
		response.FromError(c, "refresh goals", err)
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Progress(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Progress(time.Now()))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid goal id")
		return
	}

	goal, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, "get goal", err)
		return
	}
	response.Success(c, http.StatusOK, goal)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid goal id")
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, "update goal", err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid goal id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "delete goal", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
