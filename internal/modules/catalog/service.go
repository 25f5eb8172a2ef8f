package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/pricing"
	"stayhub/internal/repository"
)

type Service struct {
	properties PropertyCatalog
	reviews    ReviewSource
	users      UserSource
	rates      RateSource
}

func NewService(properties PropertyCatalog, reviews ReviewSource, users UserSource, rates RateSource) *Service {
	return &Service{
		properties: properties,
		reviews:    reviews,
		users:      users,
		rates:      rates,
	}
}

// Listing is a catalog row with the nightly price converted into the site
// currency. Rows that cannot be priced are filtered out upstream.
type Listing struct {
	repository.ListingRow
	PriceNightSite float64 `json:"price_night_site"`
	SiteCurrency   string  `json:"site_currency"`
}

type SearchRequest struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	Guests   int    `json:"guests" binding:"required,gte=1"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// PropertyDetail is the full public view of one listing.
type PropertyDetail struct {
	Property       domain.Property        `json:"property"`
	Details        domain.PropertyDetails `json:"details"`
	PriceNightSite *float64               `json:"price_night_site,omitempty"`
	SiteCurrency   string                 `json:"site_currency"`
}

// Listings returns every listed property with its nightly price converted
// to the site currency. Rates for all local currencies are primed in one
// batch before per-row lookup; a property whose price, currency or rate is
// unavailable is omitted rather than shown at zero.
func (s *Service) Listings(ctx context.Context) ([]Listing, error) {
	rows, err := s.properties.ListListed(ctx)
	if err != nil {
		return nil, err
	}
	return s.ConvertRows(ctx, rows), nil
}

// Search filters by location and guest count, and by availability when a
// date range is supplied. Prices are converted the same way Listings does.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]Listing, error) {
	if req.Country == "" && req.City == "" {
		return nil, ErrValidation
	}
	if req.Guests < 1 {
		return nil, ErrValidation
	}

	var checkIn, checkOut time.Time
	withDates := req.CheckIn != "" || req.CheckOut != ""
	if withDates {
		var err error
		checkIn, err = time.Parse("2006-01-02", req.CheckIn)
		if err != nil {
			return nil, ErrValidation
		}
		checkOut, err = time.Parse("2006-01-02", req.CheckOut)
		if err != nil {
			return nil, ErrValidation
		}
		if !checkOut.After(checkIn) {
			return nil, ErrValidation
		}
	}

	rows, err := s.properties.Search(ctx, req.Country, req.City, req.Guests, checkIn, checkOut, withDates)
	if err != nil {
		return nil, err
	}
	return s.ConvertRows(ctx, rows), nil
}

// Detail returns one property with its details and, when the property is
// priced and the rate resolves, the converted nightly price. Unlike the list
// views an unpriced property is still returned; only the site price is
// absent.
func (s *Service) Detail(ctx context.Context, id int64) (*PropertyDetail, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d, err := s.properties.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := &PropertyDetail{
		Property:     *p,
		Details:      *d,
		SiteCurrency: s.rates.BaseCurrency(),
	}
	if d.PriceNight != nil && d.LocalCurrency != nil {
		if rate, err := s.rates.GetRate(ctx, *d.LocalCurrency); err == nil {
			site := pricing.ConvertToSite(*d.PriceNight, rate)
			out.PriceNightSite = &site
		}
	}
	return out, nil
}

func (s *Service) Reviews(ctx context.Context, propertyID int64) ([]repository.PropertyReviewRow, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.reviews.ListByProperty(ctx, propertyID)
}

// ExchangeRate exposes the cached day rate for one target currency.
func (s *Service) ExchangeRate(ctx context.Context, target string) (float64, error) {
	if target == "" {
		return 0, ErrValidation
	}
	return s.rates.GetRate(ctx, target)
}

// ReviewerProfile is the public mini-profile shown next to a review.
type ReviewerProfile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (s *Service) Reviewer(ctx context.Context, userID int64) (*ReviewerProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ReviewerProfile{ID: u.ID, FirstName: u.FirstName, AvatarURL: u.AvatarURL}, nil
}

// ConvertRows primes the batch of distinct local currencies, then converts
// each row. A row with no price/currency on file, or whose rate is still
// unavailable after priming, is dropped from the result. The wishlist view
// reuses this for its own rows.
func (s *Service) ConvertRows(ctx context.Context, rows []repository.ListingRow) []Listing {
	currencies := make([]string, 0, len(rows))
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.LocalCurrency == nil {
			continue
		}
		if _, ok := seen[*row.LocalCurrency]; ok {
			continue
		}
		seen[*row.LocalCurrency] = struct{}{}
		currencies = append(currencies, *row.LocalCurrency)
	}

	// Priming is best-effort: per-row GetRate below retries individually
	// and decides which rows survive.
	_ = s.rates.PrimeRates(ctx, currencies)

	site := s.rates.BaseCurrency()
	out := make([]Listing, 0, len(rows))
	for _, row := range rows {
		if row.PriceNight == nil || row.LocalCurrency == nil {
			continue
		}
		rate, err := s.rates.GetRate(ctx, *row.LocalCurrency)
		if err != nil {
			continue
		}
		out = append(out, Listing{
			ListingRow:     row,
			PriceNightSite: pricing.ConvertToSite(*row.PriceNight, rate),
			SiteCurrency:   site,
		})
	}
	return out
}
