package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
	// CoinGecko's identifier for USDC
	tokenPriceID = "usd-coin"
)

// RateClient fetches the token's fiat exchange rate from CoinGecko.
type RateClient struct {
	baseURL  string
	currency string
	client   *http.Client
}

// NewRateClient creates a rate client for the given fiat currency code
// (lowercase, e.g. "usd", "eur").
func NewRateClient(currency string) *RateClient {
	return &RateClient{
		baseURL:  coingeckoAPI,
		currency: currency,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// TokenFiatRate gets the token's exchange rate in the configured fiat
// currency, formatted with two decimal places.
func (c *RateClient) TokenFiatRate(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", c.baseURL, tokenPriceID, c.currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	// Keyed by price ID then currency code
	var prices map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return "", fmt.Errorf("failed to decode rate: %w", err)
	}

	rate, ok := prices[tokenPriceID][c.currency]
	if !ok {
		return "", fmt.Errorf("rate response missing %s/%s", tokenPriceID, c.currency)
	}

	return strconv.FormatFloat(rate, 'f', 2, 64), nil
}
