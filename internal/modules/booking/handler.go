package booking

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/lookup", h.LookupBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking date range")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case ErrNotAvailable:
			response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Property is not available for the selected dates")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": res})
}

func (h *Handler) LookupBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.Lookup(c.Request.Context(), id, c.Query("pin"))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

type cancelRequest struct {
	PINCode string `json:"pin_code" binding:"required"`
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, req.PINCode)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrCannotCancel:
			response.Error(c, http.StatusConflict, "CANNOT_CANCEL", "Booking can no longer be cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
