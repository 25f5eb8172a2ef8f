package review

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

// RegisterRoutes expects rg to sit behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews/booking/:bookingID", h.CreateReview)
	rg.PATCH("/reviews/:id", h.UpdateReview)
	rg.DELETE("/reviews/:id", h.DeleteReview)
	rg.GET("/reviews/mine", h.MyReviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), c.GetString("email"), bookingID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Booking belongs to another guest")
		case ErrNotReviewable:
			response.Error(c, http.StatusConflict, "NOT_REVIEWABLE", "Only confirmed or completed stays can be reviewed")
		case ErrAlreadyReviewed:
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "This booking already has a review")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update review")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": rv})
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err, "Failed to delete review")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) MyReviews(c *gin.Context) {
	reviews, err := h.service.Mine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reviews")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Review belongs to another user")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func reviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review id")
		return 0, false
	}
	return id, true
}
