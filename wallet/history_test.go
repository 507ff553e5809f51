package wallet_test

import (
	"context"
	"testing"
	"time"

	"pkwallet/internal/model"
)

func historyFixture() []model.Transaction {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Transaction{
		{
			Type:      model.TransactionTypeCredit,
			TxID:      "sig-sent-small",
			From:      testOwner,
			To:        testRecipient,
			Amount:    "1.000000",
			Sponsored: true,
			Timestamp: base,
			Status:    "success",
		},
		{
			Type:      model.TransactionTypeDebit,
			TxID:      "sig-received",
			From:      testRecipient,
			To:        testOwner,
			Amount:    "25.000000",
			Timestamp: base.Add(24 * time.Hour),
			Status:    "success",
		},
		{
			Type:      model.TransactionTypeCredit,
			TxID:      "sig-sent-large",
			From:      testOwner,
			To:        testRecipient,
			Amount:    "100.000000",
			Sponsored: true,
			Timestamp: base.Add(48 * time.Hour),
			Status:    "success",
		},
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	chain := &fakeChain{transfers: historyFixture()}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	resp, err := svc.History(context.Background(), &model.HistoryRequest{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if resp.Address != testOwner {
		t.Errorf("Address = %q, want %q", resp.Address, testOwner)
	}
	if len(resp.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(resp.Transactions))
	}
	want := []string{"sig-sent-large", "sig-received", "sig-sent-small"}
	for i, tx := range resp.Transactions {
		if tx.TxID != want[i] {
			t.Errorf("transactions[%d].TxID = %q, want %q", i, tx.TxID, want[i])
		}
	}
}

func TestHistoryTypeFilter(t *testing.T) {
	chain := &fakeChain{transfers: historyFixture()}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	credit := model.TransactionTypeCredit
	resp, err := svc.History(context.Background(), &model.HistoryRequest{Type: &credit})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(resp.Transactions))
	}
	for _, tx := range resp.Transactions {
		if tx.Type != model.TransactionTypeCredit {
			t.Errorf("TxID %s has type %s", tx.TxID, tx.Type)
		}
		if !tx.Sponsored {
			t.Errorf("TxID %s should be relay-sponsored", tx.TxID)
		}
	}
}

func TestHistoryDateFilter(t *testing.T) {
	chain := &fakeChain{transfers: historyFixture()}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	// The middle day only; boundaries are inclusive.
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)
	resp, err := svc.History(context.Background(), &model.HistoryRequest{From: &from, To: &to})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(resp.Transactions))
	}
	if resp.Transactions[0].TxID != "sig-received" {
		t.Errorf("TxID = %q, want sig-received", resp.Transactions[0].TxID)
	}
}

func TestHistoryAmountFilter(t *testing.T) {
	chain := &fakeChain{transfers: historyFixture()}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	min := "2"
	max := "50"
	resp, err := svc.History(context.Background(), &model.HistoryRequest{MinAmount: &min, MaxAmount: &max})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(resp.Transactions))
	}
	if resp.Transactions[0].TxID != "sig-received" {
		t.Errorf("TxID = %q, want sig-received", resp.Transactions[0].TxID)
	}
}

func TestHistoryMinAmountBoundaryInclusive(t *testing.T) {
	chain := &fakeChain{transfers: historyFixture()}
	svc := newTestService(connectedStore(t), chain, &fakeRelay{})

	// Equal amounts pass the filter regardless of trailing zeros.
	min := "25"
	resp, err := svc.History(context.Background(), &model.HistoryRequest{MinAmount: &min})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(resp.Transactions))
	}
}

func TestHistoryNoSession(t *testing.T) {
	svc := newTestService(&memStore{}, &fakeChain{}, &fakeRelay{})

	if _, err := svc.History(context.Background(), &model.HistoryRequest{}); err == nil {
		t.Fatal("expected error without a session")
	}
}
