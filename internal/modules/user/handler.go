package user

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayhub/internal/modules/booking"
	"stayhub/internal/pkg/response"
)

// StayBuckets provides the partitioned trips dashboard for the guest.
type StayBuckets interface {
	GuestBuckets(ctx context.Context, email string) (booking.Buckets, error)
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
	rg.GET("/user/config", h.Config)
	rg.PATCH("/user", h.UpdateProfile)
	rg.PATCH("/user/password", h.ChangePassword)
	rg.DELETE("/user", h.DeleteAccount)
	rg.GET("/user/bookings", h.Bookings)
	rg.GET("/user/wishlist", h.Wishlist)
	rg.POST("/user/wishlist/:propertyID/toggle", h.ToggleWishlist)
	rg.GET("/user/wishlist/:propertyID", h.InWishlist)
}

func (h *Handler) Config(c *gin.Context) {
	u, err := h.service.Config(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		switch err {
		case ErrWrongPassword:
			response.Error(c, http.StatusForbidden, "WRONG_PASSWORD", "Current password does not match")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "New password does not meet the policy")
		default:
			h.writeError(c, err, "Failed to change password")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		if err == ErrStillHosting {
			response.Error(c, http.StatusConflict, "STILL_HOSTING", "Delete or transfer your properties first")
			return
		}
		h.writeError(c, err, "Failed to delete account")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Bookings(c *gin.Context) {
	buckets, err := h.stays.GuestBuckets(c.Request.Context(), c.GetString("email"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": buckets})
}

func (h *Handler) Wishlist(c *gin.Context) {
	listings, err := h.service.Wishlist(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load wishlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": listings})
}

func (h *Handler) ToggleWishlist(c *gin.Context) {
	propertyID, ok := h.propertyID(c)
	if !ok {
		return
	}

	on, err := h.service.ToggleWishlist(c.Request.Context(), c.GetInt64("user_id"), propertyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update wishlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"in_wishlist": on})
}

func (h *Handler) InWishlist(c *gin.Context) {
	propertyID, ok := h.propertyID(c)
	if !ok {
		return
	}

	on, err := h.service.InWishlist(c.Request.Context(), c.GetInt64("user_id"), propertyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check wishlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"in_wishlist": on})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid fields")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case ErrEmailTaken:
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already in use")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func (h *Handler) propertyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("propertyID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return 0, false
	}
	return id, true
}
