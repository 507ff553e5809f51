package session_test

import (
	"testing"
	"time"

	"pkwallet/internal/session"
)

func TestValid(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * 24 * time.Hour

	tests := []struct {
		name       string
		lastAccess time.Time
		want       bool
	}{
		{name: "just accessed", lastAccess: now, want: true},
		{name: "one day ago", lastAccess: now.Add(-24 * time.Hour), want: true},
		{name: "29 days ago", lastAccess: now.Add(-29 * 24 * time.Hour), want: true},
		{name: "exactly 30 days ago", lastAccess: now.Add(-30 * 24 * time.Hour), want: true},
		{name: "just over 30 days ago", lastAccess: now.Add(-30*24*time.Hour - time.Second), want: false},
		{name: "31 days ago", lastAccess: now.Add(-31 * 24 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &session.Record{LastAccessAt: tt.lastAccess}
			if got := session.Valid(rec, ttl, now); got != tt.want {
				t.Errorf("Valid(lastAccess=%v) = %v, want %v", tt.lastAccess, got, tt.want)
			}
		})
	}

	if session.Valid(nil, ttl, now) {
		t.Error("Valid(nil) should be false")
	}
}
