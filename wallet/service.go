// Package wallet orchestrates the passkey wallet flows: connecting
// through the authentication portal, building sponsored token
// transfers, submitting them through the relay and waiting for chain
// confirmation. All heavy lifting happens in the three external
// services; this package sequences the calls and owns the session.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pkwallet/internal/model"
	"pkwallet/internal/portal"
	"pkwallet/internal/session"

	"github.com/gagliardetto/solana-go"
)

// pendingTTL bounds how long an unsigned transfer may wait for its sign
// callback. It only caps registry growth: it is deliberately longer than
// blockhash validity (about a minute), so a slow signer gets a clean
// stale-blockhash rejection from the relay instead of an unknown-request
// error here.
const pendingTTL = 10 * time.Minute

var (
	// ErrNoSession means no wallet is connected.
	ErrNoSession = errors.New("no wallet connected")
	// ErrSessionExpired means the session passed its rolling lifetime.
	ErrSessionExpired = errors.New("session expired, reconnect the wallet")
)

// ChainReader is the slice of the RPC client the flows need.
type ChainReader interface {
	Mint() solana.PublicKey
	SolBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	TokenBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	TokenAccountExists(ctx context.Context, account solana.PublicKey) (bool, error)
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SignatureStatus(ctx context.Context, sig solana.Signature) (*model.SignatureStatus, error)
	TokenTransfers(ctx context.Context, owner solana.PublicKey, limit int) ([]model.Transaction, error)
}

// Sponsor is the fee-sponsoring relay surface.
type Sponsor interface {
	FeePayer(ctx context.Context) (solana.PublicKey, error)
	Submit(ctx context.Context, signedTx string) (string, error)
}

// RateSource provides the token's fiat exchange rate for balance
// display. Optional: a nil source leaves the fiat columns empty.
type RateSource interface {
	TokenFiatRate(ctx context.Context) (string, error)
}

// Options configures a Service.
type Options struct {
	Store       session.Store
	Chain       ChainReader
	Relay       Sponsor
	Rates       RateSource
	Portal      *portal.Client
	Logger      *slog.Logger
	CallbackURL string
	Commitment  string
	SessionTTL  time.Duration
	ConfirmWait time.Duration
	ConfirmPoll time.Duration
}

// Service carries the wallet flows.
type Service struct {
	store       session.Store
	chain       ChainReader
	relay       Sponsor
	rates       RateSource
	portal      *portal.Client
	logger      *slog.Logger
	callbackURL string
	commitment  string
	sessionTTL  time.Duration
	confirmWait time.Duration
	confirmPoll time.Duration

	mu      sync.Mutex
	pending map[string]*model.PendingTransfer
}

// NewService creates a Service.
func NewService(opt Options) *Service {
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       opt.Store,
		chain:       opt.Chain,
		relay:       opt.Relay,
		rates:       opt.Rates,
		portal:      opt.Portal,
		logger:      logger,
		callbackURL: opt.CallbackURL,
		commitment:  opt.Commitment,
		sessionTTL:  opt.SessionTTL,
		confirmWait: opt.ConfirmWait,
		confirmPoll: opt.ConfirmPoll,
		pending:     make(map[string]*model.PendingTransfer),
	}
}

// currentSession loads the session, enforces the rolling expiry and
// bumps last access. The bump is best-effort: a failed write is logged
// and never blocks the caller.
func (s *Service) currentSession(ctx context.Context) (*session.Record, error) {
	rec, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := time.Now()
	if !session.Valid(rec, s.sessionTTL, now) {
		if err := s.store.Delete(ctx); err != nil {
			s.logger.Warn("failed to purge expired session", "err", err)
		}
		return nil, ErrSessionExpired
	}

	rec.LastAccessAt = now
	if err := s.store.Touch(ctx, rec); err != nil {
		s.logger.Warn("failed to refresh session last access", "err", err)
	}
	return rec, nil
}

// addPending registers a transfer awaiting its sign callback and drops
// entries that outlived pendingTTL.
func (s *Service) addPending(p *model.PendingTransfer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-pendingTTL)
	for id, stale := range s.pending {
		if stale.CreatedAt.Before(cutoff) {
			delete(s.pending, id)
		}
	}
	s.pending[p.ID] = p
}

// takePending consumes a pending transfer exactly once.
func (s *Service) takePending(id string) (*model.PendingTransfer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return nil, false
	}
	delete(s.pending, id)
	if p.CreatedAt.Before(time.Now().Add(-pendingTTL)) {
		return nil, false
	}
	return p, true
}

func (s *Service) ownerKey(rec *session.Record) (solana.PublicKey, error) {
	owner, err := solana.PublicKeyFromBase58(rec.Address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("stored session has invalid address: %w", err)
	}
	return owner, nil
}
