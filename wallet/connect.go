package wallet

import (
	"context"
	"net/url"
	"time"

	"pkwallet/internal/common"
	"pkwallet/internal/metrics"
	"pkwallet/internal/model"
	"pkwallet/internal/portal"
	"pkwallet/internal/session"

	"github.com/google/uuid"
)

// ConnectURL returns the portal URL that starts the passkey ceremony.
func (s *Service) ConnectURL() string {
	return s.portal.ConnectURL(s.callbackURL + "/wallet/connect/callback")
}

// CompleteConnect handles the portal's connect callback: validates the
// payload, creates the session record and returns the connected wallet.
// Persisting the session is a best-effort side effect - a store failure
// is logged but the connect still succeeds, so the user is never
// blocked on local persistence (they can always reconnect).
func (s *Service) CompleteConnect(ctx context.Context, q url.Values) (*model.SessionResponse, error) {
	res, err := portal.ParseConnectCallback(q)
	if err != nil {
		metrics.Connects.WithLabelValues("error").Inc()
		return nil, err
	}

	now := time.Now()
	rec := &session.Record{
		ID:           uuid.NewString(),
		Address:      res.Address,
		CredentialID: res.CredentialID,
		CreatedAt:    now,
		LastAccessAt: now,
	}

	if err := s.store.Put(ctx, rec); err != nil {
		s.logger.Warn("failed to persist session", "err", err)
	}

	metrics.Connects.WithLabelValues("ok").Inc()
	s.logger.Info("wallet connected", "address", common.TruncateAddress(rec.Address, 4, 4))

	return sessionResponse(rec), nil
}

// Session returns the connected wallet, refreshing the rolling expiry.
func (s *Service) Session(ctx context.Context) (*model.SessionResponse, error) {
	rec, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}
	return sessionResponse(rec), nil
}

// Disconnect deletes the session record.
func (s *Service) Disconnect(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return err
	}
	s.logger.Info("wallet disconnected")
	return nil
}

func sessionResponse(rec *session.Record) *model.SessionResponse {
	return &model.SessionResponse{
		Address:      rec.Address,
		AddressShort: common.TruncateAddress(rec.Address, 4, 4),
		CredentialID: rec.CredentialID,
		CreatedAt:    rec.CreatedAt,
		LastAccessAt: rec.LastAccessAt,
	}
}
