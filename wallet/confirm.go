package wallet

import (
	"context"
	"fmt"
	"time"

	"pkwallet/internal/metrics"
	"pkwallet/internal/model"

	"github.com/gagliardetto/solana-go"
)

// commitmentRank orders confirmation levels so a stronger level
// satisfies a weaker target.
func commitmentRank(level string) int {
	switch level {
	case "processed":
		return 1
	case "confirmed":
		return 2
	case "finalized":
		return 3
	default:
		return 0
	}
}

// AwaitConfirmation polls the signature status until the configured
// commitment level is reached, the transaction fails, or the wait
// budget runs out. The outcome is always a status object: a timeout is
// a status, not an error.
func (s *Service) AwaitConfirmation(ctx context.Context, txID string) (*model.TransferStatusResponse, error) {
	sig, err := solana.SignatureFromBase58(txID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id: %w", err)
	}

	target := commitmentRank(s.commitment)
	ctx, cancel := context.WithTimeout(ctx, s.confirmWait)
	defer cancel()

	ticker := time.NewTicker(s.confirmPoll)
	defer ticker.Stop()

	for {
		status, err := s.chain.SignatureStatus(ctx, sig)
		if err != nil {
			// Transient RPC failures are absorbed by the next tick;
			// the deadline bounds how long that can go on.
			s.logger.Debug("signature status poll failed", "txId", txID, "err", err)
		} else if status.Found {
			if status.Failed {
				metrics.Confirmations.WithLabelValues(model.TransferStatusFailed).Inc()
				return &model.TransferStatusResponse{TxID: txID, Status: model.TransferStatusFailed}, nil
			}
			if commitmentRank(status.ConfirmationStatus) >= target {
				metrics.Confirmations.WithLabelValues(model.TransferStatusConfirmed).Inc()
				return &model.TransferStatusResponse{TxID: txID, Status: model.TransferStatusConfirmed}, nil
			}
		}

		select {
		case <-ctx.Done():
			metrics.Confirmations.WithLabelValues(model.TransferStatusTimeout).Inc()
			return &model.TransferStatusResponse{TxID: txID, Status: model.TransferStatusTimeout}, nil
		case <-ticker.C:
		}
	}
}

// TransferStatus is the non-blocking variant: one status read mapped to
// the same status object.
func (s *Service) TransferStatus(ctx context.Context, txID string) (*model.TransferStatusResponse, error) {
	sig, err := solana.SignatureFromBase58(txID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id: %w", err)
	}

	status, err := s.chain.SignatureStatus(ctx, sig)
	if err != nil {
		return nil, err
	}

	switch {
	case !status.Found:
		return &model.TransferStatusResponse{TxID: txID, Status: model.TransferStatusPending}, nil
	case status.Failed:
		return &model.TransferStatusResponse{TxID: txID, Status: model.TransferStatusFailed}, nil
	case commitmentRank(status.ConfirmationStatus) >= commitmentRank(s.commitment):
		return &model.TransferStatusResponse{TxID: txID, Status: model.TransferStatusConfirmed}, nil
	default:
		return &model.TransferStatusResponse{TxID: txID, Status: model.TransferStatusPending}, nil
	}
}
