package auth

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

// RegisterPublicRoutes mounts the unauthenticated endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.SignUp)
	rg.POST("/auth/signin", h.SignIn)
}

// RegisterProtectedRoutes mounts the endpoints behind the auth middleware.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/signout", h.SignOut)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "sign up", err)
		return
	}
	response.Success(c, http.StatusCreated, session)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "sign in", err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

func (h *Handler) Me(c *gin.Context) {
	raw, ok := c.Get("user_id")
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}
	userID, ok := raw.(uuid.UUID)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "load account", err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// SignOut exists for API symmetry. Tokens are stateless, so the server has
// nothing to revoke; the client discards its copy.
func (h *Handler) SignOut(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}
