// Package pricing computes stay totals in a property's local currency and
// converts local amounts into the site accounting currency.
package pricing

import (
	"errors"
	"math"
)

// ErrNotPriced means a property has no nightly price or no local currency on
// file. Such properties are dropped from price-bearing output instead of
// being shown at zero.
var ErrNotPriced = errors.New("property has no price or currency configured")

// Quote is a guest-facing amount in a named currency.
type Quote struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// QuoteTotal prices a stay of nights at pricePerNight in the property's
// local currency. Rounding happens once, on the total, so per-night rounding
// error cannot compound.
func QuoteTotal(nights int, pricePerNight *float64, localCurrency *string) (Quote, error) {
	if pricePerNight == nil || localCurrency == nil || *localCurrency == "" {
		return Quote{}, ErrNotPriced
	}
	return Quote{
		Amount:   round2(float64(nights) * *pricePerNight),
		Currency: *localCurrency,
	}, nil
}

// ConvertToSite converts an amount in a local currency to the site currency
// given the cached site→local rate. The rate direction matters: the cache
// stores how many units of the local currency one unit of site currency
// buys, so going back means dividing, not multiplying.
func ConvertToSite(amountLocal, siteToLocalRate float64) float64 {
	return round2(amountLocal / siteToLocalRate)
}

// round2 rounds half up to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
