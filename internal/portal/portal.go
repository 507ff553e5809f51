// Package portal talks to the passkey authentication portal. The portal
// performs credential creation and transaction signing out of process:
// the daemon hands the user a portal URL, the portal runs the WebAuthn
// ceremony in the browser and redirects back to the daemon's callback
// with the result in the query string. Key material never reaches the
// daemon.
package portal

import (
	"fmt"
	"net/url"
	"strings"

	"pkwallet/internal/common"
)

// Callback error codes the portal may return.
const (
	errCancelled = "cancelled"
	errDenied    = "denied"
)

// Client builds portal ceremony URLs and parses callback payloads.
type Client struct {
	baseURL string
	appID   string
}

// New creates a portal client. baseURL is the portal origin, appID the
// identity this daemon registered with the portal.
func New(baseURL, appID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
	}
}

// ConnectURL returns the portal URL that starts a passkey
// creation/authentication ceremony. redirect is the callback the portal
// returns control to.
func (c *Client) ConnectURL(redirect string) string {
	q := url.Values{}
	q.Set("app", c.appID)
	q.Set("redirect_uri", redirect)
	return fmt.Sprintf("%s/connect?%s", c.baseURL, q.Encode())
}

// SignURL returns the portal URL that asks the user to sign the given
// base64 transaction with their passkey. requestID ties the callback
// back to the pending transfer.
func (c *Client) SignURL(unsignedTx, requestID, redirect string) string {
	q := url.Values{}
	q.Set("app", c.appID)
	q.Set("request_id", requestID)
	q.Set("transaction", unsignedTx)
	q.Set("redirect_uri", redirect)
	return fmt.Sprintf("%s/sign?%s", c.baseURL, q.Encode())
}

// ConnectResult is the payload of a successful connect callback.
type ConnectResult struct {
	Address      string
	CredentialID string
}

// ParseConnectCallback validates the query string of the connect
// callback and extracts the wallet identity the portal established.
func ParseConnectCallback(q url.Values) (*ConnectResult, error) {
	if err := callbackError(q); err != nil {
		return nil, err
	}

	address := q.Get("address")
	if address == "" {
		return nil, fmt.Errorf("portal callback missing address")
	}
	if !common.IsValidAddress(address) {
		return nil, fmt.Errorf("portal callback has malformed address %q", address)
	}

	credentialID := q.Get("credential_id")
	if credentialID == "" {
		// The portal owns credential naming; older portal versions
		// omit the field entirely.
		credentialID = "passkey"
	}

	return &ConnectResult{Address: address, CredentialID: credentialID}, nil
}

// SignResult is the payload of a successful sign callback.
type SignResult struct {
	RequestID string
	SignedTx  string // base64, user-signed
}

// ParseSignCallback validates the query string of the sign callback and
// extracts the signed transaction.
func ParseSignCallback(q url.Values) (*SignResult, error) {
	if err := callbackError(q); err != nil {
		return nil, err
	}

	requestID := q.Get("request_id")
	if requestID == "" {
		return nil, fmt.Errorf("portal callback missing request_id")
	}
	signedTx := q.Get("signed_tx")
	if signedTx == "" {
		return nil, fmt.Errorf("portal callback missing signed_tx")
	}

	return &SignResult{RequestID: requestID, SignedTx: signedTx}, nil
}

// callbackError maps the portal's error query parameter to a Go error.
func callbackError(q url.Values) error {
	code := q.Get("error")
	switch code {
	case "":
		return nil
	case errCancelled, errDenied:
		return fmt.Errorf("portal: user cancelled the request")
	default:
		msg := q.Get("error_description")
		if msg == "" {
			msg = code
		}
		return fmt.Errorf("portal error: %s", msg)
	}
}
