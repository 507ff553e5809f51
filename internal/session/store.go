// Package session persists the single wallet session of the daemon: the
// connected wallet address plus the credential identifier the portal
// returned, with a rolling expiry keyed on last access.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no session record exists.
var ErrNotFound = errors.New("session not found")

// Record is the persisted session entity. It is created once after the
// first successful portal authentication, refreshed on every read and
// deleted on explicit disconnect.
type Record struct {
	ID           string    `json:"id"`
	Address      string    `json:"address"`
	CredentialID string    `json:"credentialId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessAt time.Time `json:"lastAccessAt"`
}

// Store abstracts session CRUD so the record can live in an encrypted
// local file (default) or in Redis for shared deployments.
type Store interface {
	// Get retrieves the session record. Returns ErrNotFound if no
	// record exists. Expiry is checked by the caller via Valid.
	Get(ctx context.Context) (*Record, error)
	// Put creates or replaces the session record.
	Put(ctx context.Context, rec *Record) error
	// Touch bumps the record's last-access timestamp.
	Touch(ctx context.Context, rec *Record) error
	// Delete removes the session record. Deleting a missing record is
	// not an error.
	Delete(ctx context.Context) error
}

// Valid reports whether the record is still inside its rolling lifetime:
// false when the last access is more than ttl in the past.
func Valid(rec *Record, ttl time.Duration, now time.Time) bool {
	if rec == nil {
		return false
	}
	return now.Sub(rec.LastAccessAt) <= ttl
}
