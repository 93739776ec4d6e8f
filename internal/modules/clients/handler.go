package clients

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
	rg.GET("/clients", h.List)
	rg.POST("/clients", h.Create)
	rg.POST("/clients/refresh", h.Refresh)
	rg.GET("/clients/stats", h.Stats)
	rg.GET("/clients/:id", h.Get)
	rg.PATCH("/clients/:id", h.Update)
	rg.POST("/clients/:id/cancel", h.Cancel)
}

func (h *Handler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		response.Success(c, http.StatusOK, h.service.Search(q))
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "create client", err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Refresh is the explicit foreground fetch: failures here surface to the
// caller so the app can alert, unlike the silent background interval.
func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), true); err != nil {
		response.FromError(c, "refresh clients", err)
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Stats(time.Now()))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid client id")
		return
	}

	client, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, "get client", err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid client id")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, "update client", err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid client id")
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "cancel client", err)
		return
	}
	response.Success(c, http.StatusOK, cancelled)
}
