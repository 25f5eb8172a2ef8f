package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.freecurrencyapi.com/v1/latest"

// Client fetches daily rates from freecurrencyapi.com. The endpoint is
// rate-limited, which is why everything above it goes through Cache.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type latestResponse struct {
	Data map[string]float64 `json:"data"`
}

func (c *Client) FetchRates(ctx context.Context, base string, targets []string) (map[string]float64, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("base_currency", base)
	q.Set("currencies", strings.Join(targets, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return nil, fmt.Errorf("rate provider returned empty payload")
	}
	return body.Data, nil
}
