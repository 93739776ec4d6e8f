package payments

import (
	"net/http"

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
	rg.GET("/payments", h.List)
	rg.POST("/payments", h.Create)
	rg.POST("/payments/refresh", h.Refresh)
	rg.GET("/payments/:id", h.Get)
	rg.PATCH("/payments/:id", h.Update)
	rg.POST("/payments/:id/confirm", h.Confirm)
	rg.DELETE("/payments/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		response.Success(c, http.StatusOK, h.service.Search(q))
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "create payment", err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), true); err != nil {
		response.FromError(c, "refresh payments", err)
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment id")
		return
	}

	payment, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, "get payment", err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment id")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, "update payment", err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment id")
		return
	}

	confirmed, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "confirm payment", err)
		return
	}
	response.Success(c, http.StatusOK, confirmed)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "delete payment", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
