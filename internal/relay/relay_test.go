package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"pkwallet/internal/relay"
)

const feePayerAddress = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

func TestFeePayerCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/fee-payer" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"address": feePayerAddress})
	}))
	defer srv.Close()

	c := relay.New(srv.URL, "test-key")

	first, err := c.FeePayer(context.Background())
	if err != nil {
		t.Fatalf("FeePayer: %v", err)
	}
	if first.String() != feePayerAddress {
		t.Errorf("FeePayer = %s, want %s", first, feePayerAddress)
	}

	second, err := c.FeePayer(context.Background())
	if err != nil {
		t.Fatalf("FeePayer (cached): %v", err)
	}
	if !first.Equals(second) {
		t.Error("cached fee payer differs")
	}
	if calls.Load() != 1 {
		t.Errorf("fee payer endpoint called %d times, want 1", calls.Load())
	}
}

func TestFeePayerInvalidAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"address": "garbage"})
	}))
	defer srv.Close()

	c := relay.New(srv.URL, "")
	if _, err := c.FeePayer(context.Background()); err == nil {
		t.Fatal("FeePayer with garbage address should fail")
	}
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sponsor" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Transaction string `json:"transaction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Transaction != "c2lnbmVk" {
			t.Errorf("transaction = %q", req.Transaction)
		}
		json.NewEncoder(w).Encode(map[string]string{"signature": "5k3x"})
	}))
	defer srv.Close()

	c := relay.New(srv.URL, "")
	sig, err := c.Submit(context.Background(), "c2lnbmVk")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sig != "5k3x" {
		t.Errorf("Submit = %q, want 5k3x", sig)
	}
}

func TestSubmitRejected(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantMatch string
	}{
		{
			name:      "rejection with message",
			status:    http.StatusUnprocessableEntity,
			body:      `{"message":"daily quota exceeded"}`,
			wantMatch: "daily quota exceeded",
		},
		{
			name:      "rejection without body",
			status:    http.StatusServiceUnavailable,
			body:      "",
			wantMatch: "status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := relay.New(srv.URL, "")
			_, err := c.Submit(context.Background(), "c2lnbmVk")
			if err == nil {
				t.Fatal("Submit should fail")
			}
			if !strings.Contains(err.Error(), "relay rejected") {
				t.Errorf("error %q missing relay rejected marker", err)
			}
			if !strings.Contains(err.Error(), tt.wantMatch) {
				t.Errorf("error %q does not contain %q", err, tt.wantMatch)
			}
		})
	}
}

func TestSubmitEmptySignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := relay.New(srv.URL, "")
	if _, err := c.Submit(context.Background(), "c2lnbmVk"); err == nil {
		t.Fatal("Submit with empty signature should fail")
	}
}
