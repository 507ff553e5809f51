package model

import "time"

// TransferRequest represents request for POST /wallet/transfer
type TransferRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// PendingTransfer is the transient record between the send request and
// the sign callback. It lives in memory only and is consumed exactly
// once when the signed transaction comes back from the portal.
type PendingTransfer struct {
	ID          string
	ToAddress   string
	Amount      string // decimal amount as the user typed it
	AmountMinor uint64 // integer minor units
	UnsignedTx  string // base64 transaction awaiting the user signature
	CreatedAt   time.Time
}

// TransferPreparedResponse represents response for POST /wallet/transfer
type TransferPreparedResponse struct {
	RequestID string `json:"requestId"`
	SignURL   string `json:"signUrl"`
	Amount    string `json:"amount"`
}

// TransferSubmittedResponse represents response for the sign callback
type TransferSubmittedResponse struct {
	TxID string `json:"txId"`
}

// Transfer confirmation outcomes
const (
	TransferStatusConfirmed = "confirmed"
	TransferStatusFailed    = "failed"
	TransferStatusTimeout   = "timeout"
	TransferStatusPending   = "pending"
)

// TransferStatusResponse represents response for GET /wallet/transfer/status
type TransferStatusResponse struct {
	TxID   string `json:"txId"`
	Status string `json:"status"`
}

// SignatureStatus is the chain-side view of a submitted signature.
type SignatureStatus struct {
	Found              bool
	Failed             bool
	ConfirmationStatus string // "processed", "confirmed" or "finalized"
}
