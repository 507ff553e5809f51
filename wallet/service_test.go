package wallet_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"pkwallet/internal/model"
	"pkwallet/internal/portal"
	"pkwallet/internal/session"
	"pkwallet/wallet"

	"github.com/gagliardetto/solana-go"
)

const (
	testOwner     = "So11111111111111111111111111111111111111112"
	testRecipient = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	testMint      = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	testFeePayer  = "11111111111111111111111111111111"
)

// memStore is an in-memory session.Store for tests.
type memStore struct {
	mu      sync.Mutex
	rec     *session.Record
	putErr  error
	touches int
	deletes int
}

func (s *memStore) Get(context.Context) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil, session.ErrNotFound
	}
	cp := *s.rec
	return &cp, nil
}

func (s *memStore) Put(_ context.Context, rec *session.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	cp := *rec
	s.rec = &cp
	return nil
}

func (s *memStore) Touch(_ context.Context, rec *session.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touches++
	if s.rec != nil {
		s.rec.LastAccessAt = rec.LastAccessAt
	}
	return nil
}

func (s *memStore) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	s.rec = nil
	return nil
}

// fakeChain is a scripted wallet.ChainReader.
type fakeChain struct {
	mu            sync.Mutex
	tokenBalance  uint64
	solBalance    uint64
	accountExists bool
	statuses      []*model.SignatureStatus
	statusIdx     int
	transfers     []model.Transaction
}

func (c *fakeChain) Mint() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(testMint)
}

func (c *fakeChain) SolBalance(context.Context, solana.PublicKey) (uint64, error) {
	return c.solBalance, nil
}

func (c *fakeChain) TokenBalance(context.Context, solana.PublicKey) (uint64, error) {
	return c.tokenBalance, nil
}

func (c *fakeChain) TokenAccountExists(context.Context, solana.PublicKey) (bool, error) {
	return c.accountExists, nil
}

func (c *fakeChain) LatestBlockhash(context.Context) (solana.Hash, error) {
	return solana.Hash{}, nil
}

func (c *fakeChain) SignatureStatus(context.Context, solana.Signature) (*model.SignatureStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.statuses) == 0 {
		return &model.SignatureStatus{Found: false}, nil
	}
	st := c.statuses[c.statusIdx]
	if c.statusIdx < len(c.statuses)-1 {
		c.statusIdx++
	}
	return st, nil
}

func (c *fakeChain) TokenTransfers(context.Context, solana.PublicKey, int) ([]model.Transaction, error) {
	return c.transfers, nil
}

// fakeRelay is a scripted wallet.Sponsor.
type fakeRelay struct {
	mu        sync.Mutex
	submitSig string
	submitErr error
	submitted []string
}

func (r *fakeRelay) FeePayer(context.Context) (solana.PublicKey, error) {
	return solana.MustPublicKeyFromBase58(testFeePayer), nil
}

func (r *fakeRelay) Submit(_ context.Context, signedTx string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.submitErr != nil {
		return "", r.submitErr
	}
	r.submitted = append(r.submitted, signedTx)
	return r.submitSig, nil
}

// fakeRates is a scripted wallet.RateSource.
type fakeRates struct {
	rate string
	err  error
}

func (f *fakeRates) TokenFiatRate(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.rate, nil
}

func newTestService(store session.Store, chain *fakeChain, sponsor *fakeRelay) *wallet.Service {
	return newTestServiceRates(store, chain, sponsor, nil)
}

func newTestServiceRates(store session.Store, chain *fakeChain, sponsor *fakeRelay, rates wallet.RateSource) *wallet.Service {
	return wallet.NewService(wallet.Options{
		Store:       store,
		Chain:       chain,
		Relay:       sponsor,
		Rates:       rates,
		Portal:      portal.New("https://portal.example.com", "demo-app"),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		CallbackURL: "http://localhost:8080",
		Commitment:  "confirmed",
		SessionTTL:  30 * 24 * time.Hour,
		ConfirmWait: 300 * time.Millisecond,
		ConfirmPoll: 20 * time.Millisecond,
	})
}

func transferReq(to, amount string) *model.TransferRequest {
	return &model.TransferRequest{ToAddress: to, Amount: amount}
}

func connectedStore(t *testing.T) *memStore {
	t.Helper()
	now := time.Now()
	return &memStore{rec: &session.Record{
		ID:           "rec-1",
		Address:      testOwner,
		CredentialID: "passkey",
		CreatedAt:    now,
		LastAccessAt: now,
	}}
}
