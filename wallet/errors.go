package wallet

import (
	"context"
	"errors"
	"strings"
)

// User-facing error buckets. Every failure shown to the user collapses
// into one of these fixed strings; the raw error stays in the logs.
const (
	CodeCancelled      = "cancelled"
	CodeNotInitialized = "account_not_initialized"
	CodeInsufficient   = "insufficient_balance"
	CodeNetwork        = "network_error"
	CodeRelayRejected  = "relay_rejected"
	CodeNoSession      = "no_session"
	CodeInvalidInput   = "invalid_input"
	CodeGenericFailure = "transfer_failed"
)

// UserError pairs a stable code with the display string for it.
type UserError struct {
	Code    string
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// Classify maps an internal error to its user-facing bucket. Matching
// is by substring on the error text: the portal, relay and RPC node all
// report errors as free text, so this is the only classification signal
// available at the call site.
func Classify(err error) *UserError {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNoSession) || errors.Is(err, ErrSessionExpired) {
		return &UserError{Code: CodeNoSession, Message: "No wallet connected. Connect your wallet first."}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "cancelled"):
		return &UserError{Code: CodeCancelled, Message: "The request was cancelled."}
	case strings.Contains(msg, "not initialized"):
		return &UserError{Code: CodeNotInitialized, Message: "The recipient account is not initialized. The recipient must receive the token at least once before you can send to them."}
	case strings.Contains(msg, "insufficient"):
		return &UserError{Code: CodeInsufficient, Message: "Insufficient balance for this transfer."}
	case strings.Contains(msg, "relay rejected"):
		return &UserError{Code: CodeRelayRejected, Message: "The fee sponsor declined this transaction. Please try again later."}
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network"):
		return &UserError{Code: CodeNetwork, Message: "Network error. Check your connection and try again."}
	// Session-store decryption failures say "invalid passphrase"; they
	// have nothing to do with user input and must not reach the
	// invalid-input bucket below.
	case strings.Contains(msg, "passphrase"):
		return &UserError{Code: CodeGenericFailure, Message: "Something went wrong. Please try again."}
	case strings.Contains(msg, "invalid"):
		return &UserError{Code: CodeInvalidInput, Message: "Invalid input. Check the address and amount."}
	default:
		return &UserError{Code: CodeGenericFailure, Message: "Something went wrong. Please try again."}
	}
}
