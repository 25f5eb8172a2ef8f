package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/internal/exchange"
	"stayhub/internal/modules/booking"
	"stayhub/internal/pkg/dates"
	"stayhub/internal/pkg/response"
	"stayhub/internal/pricing"
)

// StayService is the slice of the booking service the public property
// surface exposes: calendar, availability probe and price quote.
type StayService interface {
	IsAvailable(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error)
	BookedRanges(ctx context.Context, propertyID int64, month string) ([]dates.Range, error)
	Quote(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (pricing.Quote, error)
}

type Handler struct {
	service *Service
	stays   StayService
}

func NewHandler(service *Service, stays StayService) *Handler {
	return &Handler{service: service, stays: stays}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.ListProperties)
	rg.POST("/properties/search", h.SearchProperties)
	rg.GET("/properties/:id", h.GetProperty)
	rg.GET("/properties/:id/reviews", h.ListReviews)
	rg.GET("/properties/:id/booked", h.BookedRanges)
	rg.GET("/properties/:id/availability", h.Availability)
	rg.GET("/properties/:id/quote", h.QuoteStay)
	rg.GET("/misc/exchange-rate", h.ExchangeRate)
	rg.GET("/misc/users/:id", h.Reviewer)
}

func (h *Handler) ListProperties(c *gin.Context) {
	listings, err := h.service.Listings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load properties")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": listings})
}

func (h *Handler) SearchProperties(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	listings, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search parameters")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": listings})
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load property")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) ListReviews(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	reviews, err := h.service.Reviews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reviews")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) BookedRanges(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	month := c.Query("month")
	ranges, err := h.stays.BookedRanges(c.Request.Context(), id, month)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "month must be YYYY-MM")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booked ranges")
		return
	}
	response.Success(c, http.StatusOK, booking.BookedRangesResponse{
		PropertyID: id,
		Month:      month,
		Booked:     ranges,
	})
}

func (h *Handler) Availability(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}
	checkIn, checkOut, ok := h.dateRange(c)
	if !ok {
		return
	}

	free, err := h.stays.IsAvailable(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability check failed")
		return
	}
	response.Success(c, http.StatusOK, booking.AvailabilityResponse{Available: free})
}

func (h *Handler) QuoteStay(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}
	checkIn, checkOut, ok := h.dateRange(c)
	if !ok {
		return
	}

	quote, err := h.stays.Quote(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range")
		case errors.Is(err, booking.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case errors.Is(err, pricing.ErrNotPriced):
			response.Error(c, http.StatusUnprocessableEntity, "NOT_PRICED", "Property has no nightly price configured")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to quote stay")
		}
		return
	}
	response.Success(c, http.StatusOK, quote)
}

func (h *Handler) ExchangeRate(c *gin.Context) {
	target := c.Query("target")
	rate, err := h.service.ExchangeRate(c.Request.Context(), target)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "target currency is required")
		case errors.Is(err, exchange.ErrRateUnavailable):
			response.Error(c, http.StatusBadGateway, "RATE_UNAVAILABLE", "Exchange rate is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load exchange rate")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"target": target, "rate": rate})
}

func (h *Handler) Reviewer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	profile, err := h.service.Reviewer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) propertyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return 0, false
	}
	return id, true
}

func (h *Handler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	checkIn, err := time.Parse("2006-01-02", c.Query("check_in"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("check_out"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}
