package submissions

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/response"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions", h.List)
	rg.POST("/submissions", h.Create)
	rg.POST("/submissions/refresh", h.Refresh)
	rg.DELETE("/submissions/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		response.Success(c, http.StatusOK, h.service.Search(q))
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "submission is invalid", errors)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "record submission", err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), true); err != nil {
		response.FromError(c, "refresh submissions", err)
		return
	}
	response.Success(c, http.StatusOK, h.service.List())
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid submission id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "delete submission", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
