package summary

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summary", h.Generate)
	rg.GET("/summary/diagnostics", h.Diagnostics)
}

func (h *Handler) Generate(c *gin.Context) {
	text, err := h.service.Generate(c.Request.Context())
	if err != nil {
		response.FromError(c, "generate summary", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": text})
}

// Diagnostics lets the app surface an actionable key problem instead of a
// generic failure when the summary button is greyed out.
func (h *Handler) Diagnostics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Diagnostics())
}
