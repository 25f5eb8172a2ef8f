package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.Signup)
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/exists", h.Exists)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password does not meet the policy")
		case ErrEmailTaken:
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign up")
		}
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		return
	}
	response.Success(c, http.StatusOK, res)
}

type existsRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) Exists(c *gin.Context) {
	var req existsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check email")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exists": exists})
}
