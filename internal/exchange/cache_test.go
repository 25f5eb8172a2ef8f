package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider counts calls and serves canned rates, failing the first n
// requests when failures > 0.
type stubProvider struct {
	rates    map[string]float64
	calls    int
	batches  [][]string
	failures int
}

func (s *stubProvider) FetchRates(_ context.Context, _ string, targets []string) (map[string]float64, error) {
	s.calls++
	s.batches = append(s.batches, targets)
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("provider unreachable")
	}
	out := make(map[string]float64, len(targets))
	for _, t := range targets {
		if r, ok := s.rates[t]; ok {
			out[t] = r
		}
	}
	return out, nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestGetRate_BaseCurrencyShortCircuits(t *testing.T) {
	p := &stubProvider{}
	c := NewCache("EUR", p, fixedClock(time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)))

	rate, err := c.GetRate(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, 0, p.calls)
}

func TestGetRate_SameDayHit(t *testing.T) {
	p := &stubProvider{rates: map[string]float64{"USD": 1.10}}
	c := NewCache("EUR", p, fixedClock(time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)))

	rate, err := c.GetRate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.10, rate)

	rate, err = c.GetRate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.10, rate)
	assert.Equal(t, 1, p.calls)
}

func TestGetRate_CalendarRolloverIsAMiss(t *testing.T) {
	// Fetched at 23:59, asked again two minutes later: under an hour by the
	// wall clock, but the calendar date changed, so the entry is stale.
	now := time.Date(2025, 8, 1, 23, 59, 0, 0, time.UTC)
	p := &stubProvider{rates: map[string]float64{"USD": 1.10}}
	c := NewCache("EUR", p, func() time.Time { return now })

	_, err := c.GetRate(context.Background(), "USD")
	require.NoError(t, err)

	now = time.Date(2025, 8, 2, 0, 1, 0, 0, time.UTC)
	p.rates["USD"] = 1.12

	rate, err := c.GetRate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.12, rate)
	assert.Equal(t, 2, p.calls)
}

func TestGetRate_RetriesOnceThenFails(t *testing.T) {
	p := &stubProvider{rates: map[string]float64{"USD": 1.10}, failures: 1}
	c := NewCache("EUR", p, fixedClock(time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)))

	rate, err := c.GetRate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.10, rate)
	assert.Equal(t, 2, p.calls)

	p2 := &stubProvider{rates: map[string]float64{"USD": 1.10}, failures: 2}
	c2 := NewCache("EUR", p2, fixedClock(time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)))

	_, err = c2.GetRate(context.Background(), "USD")
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Equal(t, 2, p2.calls)
}

func TestGetRate_MissingCurrencyInResponse(t *testing.T) {
	p := &stubProvider{rates: map[string]float64{}}
	c := NewCache("EUR", p, fixedClock(time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)))

	_, err := c.GetRate(context.Background(), "XXX")
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

func TestPrimeRates_SingleBatchThenHits(t *testing.T) {
	p := &stubProvider{rates: map[string]float64{"USD": 1.10, "CHF": 0.95, "ISK": 150.2}}
	c := NewCache("EUR", p, fixedClock(time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)))

	err := c.PrimeRates(context.Background(), []string{"USD", "CHF", "ISK", "USD", "EUR", ""})
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
	// Base currency and duplicates never reach the provider.
	assert.ElementsMatch(t, []string{"USD", "CHF", "ISK"}, p.batches[0])

	for currency, want := range map[string]float64{"USD": 1.10, "CHF": 0.95, "ISK": 150.2} {
		rate, err := c.GetRate(context.Background(), currency)
		require.NoError(t, err)
		assert.Equal(t, want, rate)
	}
	assert.Equal(t, 1, p.calls)
}

func TestPrimeRates_IdempotentWithinADay(t *testing.T) {
	p := &stubProvider{rates: map[string]float64{"USD": 1.10, "CHF": 0.95}}
	c := NewCache("EUR", p, fixedClock(time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)))

	require.NoError(t, c.PrimeRates(context.Background(), []string{"USD", "CHF"}))
	require.NoError(t, c.PrimeRates(context.Background(), []string{"USD", "CHF"}))
	assert.Equal(t, 1, p.calls)

	rate, err := c.GetRate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.10, rate)
}
