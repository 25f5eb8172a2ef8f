package host

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayhub/internal/modules/booking"
	"stayhub/internal/pkg/response"
)

// StayBuckets provides the partitioned booking dashboard for the host.
type StayBuckets interface {
	HostBuckets(ctx context.Context, hostID int64) (booking.Buckets, error)
}

type Handler struct {
	service *Service
	stays   StayBuckets
}

func NewHandler(service *Service, stays StayBuckets) *Handler {
	return &Handler{service: service, stays: stays}
}

// RegisterRoutes expects rg to sit behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/host/properties", h.ListProperties)
	rg.POST("/host/properties", h.CreateProperty)
	rg.PATCH("/host/properties/:id", h.UpdateProperty)
	rg.PATCH("/host/properties/:id/details", h.UpdateDetails)
	rg.DELETE("/host/properties/:id", h.DeleteProperty)
	rg.GET("/host/bookings", h.Bookings)
}

func (h *Handler) ListProperties(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load properties")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": rows})
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price and currency must be set together")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create property")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"property": p})
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req); err != nil {
		h.writeError(c, err, "Failed to update property")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.UpdateDetails(c.Request.Context(), c.GetInt64("user_id"), id, req); err != nil {
		h.writeError(c, err, "Failed to update property details")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		if err == ErrHasBookings {
			response.Error(c, http.StatusConflict, "HAS_BOOKINGS", "Property cannot be deleted while bookings exist")
			return
		}
		h.writeError(c, err, "Failed to delete property")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Bookings(c *gin.Context) {
	buckets, err := h.stays.HostBuckets(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": buckets})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property fields")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Property belongs to another host")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func (h *Handler) propertyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return 0, false
	}
	return id, true
}
