package wallet_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"

	"pkwallet/wallet"
)

func TestPrepareTransfer(t *testing.T) {
	chain := &fakeChain{tokenBalance: 25_000_000, accountExists: true}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	resp, err := svc.PrepareTransfer(context.Background(), transferReq(testRecipient, "10.50"))
	if err != nil {
		t.Fatalf("PrepareTransfer: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("empty request id")
	}
	if resp.Amount != "10.500000" {
		t.Errorf("Amount = %q, want %q", resp.Amount, "10.500000")
	}

	u, err := url.Parse(resp.SignURL)
	if err != nil {
		t.Fatalf("SignURL unparseable: %v", err)
	}
	if !strings.HasSuffix(u.Path, "/sign") {
		t.Errorf("sign URL path = %q", u.Path)
	}
	if got := u.Query().Get("request_id"); got != resp.RequestID {
		t.Errorf("request_id in URL = %q, want %q", got, resp.RequestID)
	}

	unsigned := u.Query().Get("transaction")
	if unsigned == "" {
		t.Fatal("sign URL carries no transaction")
	}
	if _, err := base64.StdEncoding.DecodeString(unsigned); err != nil {
		t.Errorf("transaction is not valid base64: %v", err)
	}
}

func TestPrepareTransferInsufficientBalance(t *testing.T) {
	chain := &fakeChain{tokenBalance: 5_000_000, accountExists: true}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	_, err := svc.PrepareTransfer(context.Background(), transferReq(testRecipient, "10.50"))
	if err == nil {
		t.Fatal("expected insufficient balance error")
	}
	if got := wallet.Classify(err).Code; got != wallet.CodeInsufficient {
		t.Errorf("Classify code = %q, want %q", got, wallet.CodeInsufficient)
	}
}

func TestPrepareTransferRecipientNotInitialized(t *testing.T) {
	chain := &fakeChain{tokenBalance: 25_000_000, accountExists: false}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	_, err := svc.PrepareTransfer(context.Background(), transferReq(testRecipient, "1"))
	if err == nil {
		t.Fatal("expected uninitialized recipient error")
	}
	if got := wallet.Classify(err).Code; got != wallet.CodeNotInitialized {
		t.Errorf("Classify code = %q, want %q", got, wallet.CodeNotInitialized)
	}
}

func TestPrepareTransferInvalidInput(t *testing.T) {
	chain := &fakeChain{tokenBalance: 25_000_000, accountExists: true}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	cases := []struct {
		name   string
		to     string
		amount string
	}{
		{"bad address", "not-an-address", "1"},
		{"self send", testOwner, "1"},
		{"zero amount", testRecipient, "0"},
		{"negative amount", testRecipient, "-3"},
		{"garbage amount", testRecipient, "ten"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PrepareTransfer(context.Background(), transferReq(tc.to, tc.amount))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := wallet.Classify(err).Code; got != wallet.CodeInvalidInput {
				t.Errorf("Classify code = %q, want %q (err: %v)", got, wallet.CodeInvalidInput, err)
			}
		})
	}
}

func TestPrepareTransferNoSession(t *testing.T) {
	svc := newTestService(&memStore{}, &fakeChain{}, &fakeRelay{})

	_, err := svc.PrepareTransfer(context.Background(), transferReq(testRecipient, "1"))
	if !errors.Is(err, wallet.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestCompleteTransfer(t *testing.T) {
	chain := &fakeChain{tokenBalance: 25_000_000, accountExists: true}
	relay := &fakeRelay{submitSig: "5k3xSig"}
	svc := newTestService(connectedStore(t), chain, relay)

	prepared, err := svc.PrepareTransfer(context.Background(), transferReq(testRecipient, "2"))
	if err != nil {
		t.Fatalf("PrepareTransfer: %v", err)
	}

	q := url.Values{}
	q.Set("request_id", prepared.RequestID)
	q.Set("signed_tx", "c2lnbmVk")

	resp, err := svc.CompleteTransfer(context.Background(), q)
	if err != nil {
		t.Fatalf("CompleteTransfer: %v", err)
	}
	if resp.TxID != "5k3xSig" {
		t.Errorf("TxID = %q, want %q", resp.TxID, "5k3xSig")
	}
	if len(relay.submitted) != 1 || relay.submitted[0] != "c2lnbmVk" {
		t.Errorf("relay received %v", relay.submitted)
	}

	// The pending entry is consumed: a replayed callback must fail.
	if _, err := svc.CompleteTransfer(context.Background(), q); err == nil {
		t.Fatal("expected error for replayed callback")
	}
}

func TestCompleteTransferUnknownRequest(t *testing.T) {
	svc := newTestService(connectedStore(t), &fakeChain{}, &fakeRelay{})

	q := url.Values{}
	q.Set("request_id", "nope")
	q.Set("signed_tx", "c2lnbmVk")

	_, err := svc.CompleteTransfer(context.Background(), q)
	if err == nil {
		t.Fatal("expected error for unknown request id")
	}
	if got := wallet.Classify(err).Code; got != wallet.CodeInvalidInput {
		t.Errorf("Classify code = %q, want %q", got, wallet.CodeInvalidInput)
	}
}

func TestCompleteTransferCancelled(t *testing.T) {
	relay := &fakeRelay{submitSig: "sig"}
	svc := newTestService(connectedStore(t), &fakeChain{}, relay)

	q := url.Values{}
	q.Set("error", "denied")

	_, err := svc.CompleteTransfer(context.Background(), q)
	if err == nil {
		t.Fatal("expected error for denied callback")
	}
	if got := wallet.Classify(err).Code; got != wallet.CodeCancelled {
		t.Errorf("Classify code = %q, want %q", got, wallet.CodeCancelled)
	}
	if len(relay.submitted) != 0 {
		t.Error("relay called despite denied callback")
	}
}

func TestCompleteTransferRelayRejected(t *testing.T) {
	chain := &fakeChain{tokenBalance: 25_000_000, accountExists: true}
	relay := &fakeRelay{submitErr: errors.New("relay rejected transaction: simulation failed")}
	svc := newTestService(connectedStore(t), chain, relay)

	prepared, err := svc.PrepareTransfer(context.Background(), transferReq(testRecipient, "2"))
	if err != nil {
		t.Fatalf("PrepareTransfer: %v", err)
	}

	q := url.Values{}
	q.Set("request_id", prepared.RequestID)
	q.Set("signed_tx", "c2lnbmVk")

	_, err = svc.CompleteTransfer(context.Background(), q)
	if err == nil {
		t.Fatal("expected relay error")
	}
	if got := wallet.Classify(err).Code; got != wallet.CodeRelayRejected {
		t.Errorf("Classify code = %q, want %q", got, wallet.CodeRelayRejected)
	}
}
