package model

// BalanceResponse represents response for GET /wallet/balance.
// Rate and Fiat are filled from the price feed when it is reachable;
// the chain balances never depend on it.
type BalanceResponse struct {
	Address string `json:"address"`
	USDC    string `json:"usdc"`
	SOL     string `json:"sol"`
	Rate    string `json:"rate,omitempty"` // fiat per token
	Fiat    string `json:"fiat,omitempty"` // USDC balance in fiat
}

// ReceiveResponse represents response for GET /wallet/receive
type ReceiveResponse struct {
	Address string `json:"address"`
	QR      string `json:"qr"` // base64 PNG
}
