package dashboard

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
	rg.GET("/dashboard", h.Get)
	rg.POST("/dashboard/recompute", h.Recompute)
}

func (h *Handler) Get(c *gin.Context) {
	snap := h.service.Current()
	if snap.ComputedAt.IsZero() {
		snap = h.service.Recompute(c.Request.Context())
	}
	response.Success(c, http.StatusOK, snap)
}

// Recompute forces a rebuild, the dashboard's pull-to-refresh.
func (h *Handler) Recompute(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Recompute(c.Request.Context()))
}
