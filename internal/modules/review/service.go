package review

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type Service struct {
	reviews    ReviewRepository
	bookings   BookingSource
	properties RatingSink
}

func NewService(reviews ReviewRepository, bookings BookingSource, properties RatingSink) *Service {
	return &Service{reviews: reviews, bookings: bookings, properties: properties}
}

type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

// Create attaches a review to one of the caller's own bookings. Only a
// confirmed or completed stay can be reviewed, once; the property's rating
// aggregate is recomputed afterwards.
func (s *Service) Create(ctx context.Context, userID int64, userEmail string, bookingID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Email != userEmail {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingConfirmed && b.Status != domain.BookingCompleted {
		return nil, ErrNotReviewable
	}

	taken, err := s.reviews.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		BookingID:  bookingID,
		PropertyID: b.PropertyID,
		UserID:     userID,
		Rating:     req.Rating,
		Title:      req.Title,
		Body:       req.Body,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}

	if err := s.recompute(ctx, b.PropertyID); err != nil {
		return nil, err
	}
	return rv, nil
}

// Update edits the author's own review and recomputes the aggregate when the
// rating changed.
func (s *Service) Update(ctx context.Context, userID, reviewID int64, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.ownReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrValidation
		}
		fields["rating"] = *req.Rating
		rv.Rating = *req.Rating
	}
	if req.Title != nil {
		fields["title"] = *req.Title
		rv.Title = *req.Title
	}
	if req.Body != nil {
		fields["body"] = *req.Body
		rv.Body = *req.Body
	}
	if len(fields) == 0 {
		return rv, nil
	}

	if err := s.reviews.UpdateFields(ctx, reviewID, fields); err != nil {
		return nil, err
	}
	if _, changed := fields["rating"]; changed {
		if err := s.recompute(ctx, rv.PropertyID); err != nil {
			return nil, err
		}
	}
	return rv, nil
}

// Delete removes the author's own review and recomputes the aggregate.
func (s *Service) Delete(ctx context.Context, userID, reviewID int64) error {
	rv, err := s.ownReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	return s.recompute(ctx, rv.PropertyID)
}

func (s *Service) Mine(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

func (s *Service) ownReview(ctx context.Context, userID, reviewID int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrForbidden
	}
	return rv, nil
}

// recompute rewrites the property's rating (one decimal place) and review
// count from the surviving reviews; no reviews clears the rating entirely.
func (s *Service) recompute(ctx context.Context, propertyID int64) error {
	avg, cnt, err := s.reviews.RatingStats(ctx, propertyID)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return s.properties.SetRating(ctx, propertyID, nil, 0)
	}
	rounded := math.Round(avg*10) / 10
	return s.properties.SetRating(ctx, propertyID, &rounded, cnt)
}
