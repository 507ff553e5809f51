package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTokenFiatRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "ids=usd-coin") || !strings.Contains(r.URL.RawQuery, "vs_currencies=eur") {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"usd-coin":{"eur":0.923}}`))
	}))
	defer srv.Close()

	c := NewRateClient("eur")
	c.baseURL = srv.URL

	rate, err := c.TokenFiatRate(context.Background())
	if err != nil {
		t.Fatalf("TokenFiatRate: %v", err)
	}
	if rate != "0.92" {
		t.Errorf("rate = %q, want %q", rate, "0.92")
	}
}

func TestTokenFiatRateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: ""},
		{name: "missing currency", status: http.StatusOK, body: `{"usd-coin":{}}`},
		{name: "missing id", status: http.StatusOK, body: `{}`},
		{name: "garbage body", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewRateClient("usd")
			c.baseURL = srv.URL

			if _, err := c.TokenFiatRate(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
