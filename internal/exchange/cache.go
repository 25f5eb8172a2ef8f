// Package exchange keeps a process-wide, day-granular cache of currency
// rates so that listing a page of properties does not hammer the rate
// provider's request limit.
package exchange

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateUnavailable means the provider could not be reached or returned no
// rate for the requested currency. Callers omit the affected property from
// price-bearing output; the rate is never defaulted.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Provider fetches site→target rates from an external source in one call.
type Provider interface {
	FetchRates(ctx context.Context, base string, targets []string) (map[string]float64, error)
}

// Clock returns the current time; injected so tests can roll the calendar.
type Clock func() time.Time

const dayFormat = "2006-01-02"

type entry struct {
	rate float64
	day  string
}

// Cache holds one rate per target currency, stamped with the calendar date
// it was fetched on. An entry is fresh only while the stamp matches today's
// date, so a rate fetched at 23:59 expires a minute later while one fetched
// at 00:01 lasts the whole day.
//
// Construct once per process and inject into services. The mutex only keeps
// the map memory-safe; fetches run outside it, so two requests racing on a
// cold currency may both hit the provider. Both store the same day's rate,
// last write wins.
type Cache struct {
	base     string
	provider Provider
	now      Clock

	mu      sync.RWMutex
	entries map[string]entry
}

func NewCache(baseCurrency string, provider Provider, now Clock) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		base:     baseCurrency,
		provider: provider,
		now:      now,
		entries:  make(map[string]entry),
	}
}

// BaseCurrency returns the site accounting currency all rates are quoted
// against.
func (c *Cache) BaseCurrency() string { return c.base }

// GetRate returns the site→target rate, fetching from the provider on a
// cache miss or a stale calendar stamp. The base currency is always 1
// without a lookup. A failed fetch is retried once before giving up.
func (c *Cache) GetRate(ctx context.Context, target string) (float64, error) {
	if target == c.base {
		return 1, nil
	}

	today := c.today()
	if rate, ok := c.lookup(target, today); ok {
		return rate, nil
	}

	rates, err := c.provider.FetchRates(ctx, c.base, []string{target})
	if err != nil {
		rates, err = c.provider.FetchRates(ctx, c.base, []string{target})
	}
	if err != nil {
		return 0, errors.Join(ErrRateUnavailable, err)
	}
	rate, ok := rates[target]
	if !ok {
		return 0, ErrRateUnavailable
	}

	c.store(target, rate, today)
	return rate, nil
}

// PrimeRates batch-fetches every currency in targets that is not the base
// and not already fresh, in a single provider call. Callers follow up with
// GetRate per row and hit the cache. Currencies missing from the provider
// response are simply not stored; the later GetRate surfaces the failure.
func (c *Cache) PrimeRates(ctx context.Context, targets []string) error {
	today := c.today()

	missing := make([]string, 0, len(targets))
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if t == "" || t == c.base || seen[t] {
			continue
		}
		seen[t] = true
		if _, ok := c.lookup(t, today); !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	rates, err := c.provider.FetchRates(ctx, c.base, missing)
	if err != nil {
		return errors.Join(ErrRateUnavailable, err)
	}
	for currency, rate := range rates {
		c.store(currency, rate, today)
	}
	return nil
}

func (c *Cache) today() string {
	return c.now().UTC().Format(dayFormat)
}

func (c *Cache) lookup(target, today string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[target]
	if !ok || e.day != today {
		return 0, false
	}
	return e.rate, true
}

func (c *Cache) store(target string, rate float64, day string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[target] = entry{rate: rate, day: day}
}
