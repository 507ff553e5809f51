// Package relay is the client for the fee-sponsoring relay. The relay
// receives an already-user-signed transaction, adds its own fee payment
// and submits the result to the chain.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Client talks to the relay over HTTPS.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client

	mu       sync.Mutex
	feePayer solana.PublicKey // cached, the relay rotates it rarely
}

// New creates a relay client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// feePayerResponse response from GET /v1/fee-payer
type feePayerResponse struct {
	Address string `json:"address"`
}

// FeePayer returns the public key the relay pays fees from. The
// transaction message must name it as fee payer before the user signs,
// so the relay's added signature matches the message. The value is
// cached after the first successful fetch.
func (c *Client) FeePayer(ctx context.Context) (solana.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.feePayer.IsZero() {
		return c.feePayer, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/fee-payer", nil)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to build fee payer request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to get fee payer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return solana.PublicKey{}, fmt.Errorf("failed to get fee payer: status %d", resp.StatusCode)
	}

	var payerResp feePayerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payerResp); err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to decode fee payer: %w", err)
	}

	payer, err := solana.PublicKeyFromBase58(payerResp.Address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("relay returned invalid fee payer address: %w", err)
	}

	c.feePayer = payer
	return payer, nil
}

// sponsorRequest request for POST /v1/sponsor
type sponsorRequest struct {
	Transaction string `json:"transaction"` // base64, user-signed
}

// sponsorResponse response from POST /v1/sponsor
type sponsorResponse struct {
	Signature string `json:"signature"`
	Message   string `json:"message,omitempty"`
}

// Submit sends the user-signed transaction to the relay and returns the
// signature the chain will track it under.
func (c *Client) Submit(ctx context.Context, signedTx string) (string, error) {
	body, err := json.Marshal(sponsorRequest{Transaction: signedTx})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sponsor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sponsor", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build sponsor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Surface the relay's own message so the caller can map it to
		// the relay-rejection bucket.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var rejection sponsorResponse
		if json.Unmarshal(raw, &rejection) == nil && rejection.Message != "" {
			return "", fmt.Errorf("relay rejected transaction: %s", rejection.Message)
		}
		return "", fmt.Errorf("relay rejected transaction: status %d", resp.StatusCode)
	}

	var sponsored sponsorResponse
	if err := json.NewDecoder(resp.Body).Decode(&sponsored); err != nil {
		return "", fmt.Errorf("failed to decode sponsor response: %w", err)
	}
	if sponsored.Signature == "" {
		return "", fmt.Errorf("relay returned empty signature")
	}

	return sponsored.Signature, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
