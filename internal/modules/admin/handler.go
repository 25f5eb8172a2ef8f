package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to sit behind auth + admin-role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/properties", h.ListProperties)
	rg.DELETE("/admin/properties/:id", h.DeleteProperty)
}

func (h *Handler) ListProperties(c *gin.Context) {
	rows, err := h.service.ListProperties(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load properties")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": rows})
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	if err := h.service.DeleteProperty(c.Request.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case ErrHasBookings:
			response.Error(c, http.StatusConflict, "HAS_BOOKINGS", "Property cannot be deleted while bookings exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete property")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
