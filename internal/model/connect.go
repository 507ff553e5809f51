package model

import "time"

// ConnectResponse represents response for POST /wallet/connect
type ConnectResponse struct {
	PortalURL string `json:"portalUrl"`
}

// SessionResponse represents the connected-wallet view returned by
// the connect callback and GET /wallet/session
type SessionResponse struct {
	Address      string    `json:"address"`
	AddressShort string    `json:"addressShort"`
	CredentialID string    `json:"credentialId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessAt time.Time `json:"lastAccessAt"`
}

// DisconnectResponse represents response for POST /wallet/disconnect
type DisconnectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
