package wallet

import (
	"context"
	"fmt"
	"sort"

	"pkwallet/internal/common"
	"pkwallet/internal/model"
)

const historyLimit = 100

// History gets the connected wallet's token transfers with filtering.
func (s *Service) History(ctx context.Context, req *model.HistoryRequest) (*model.HistoryResponse, error) {
	rec, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	owner, err := s.ownerKey(rec)
	if err != nil {
		return nil, err
	}

	transfers, err := s.chain.TokenTransfers(ctx, owner, historyLimit)
	if err != nil {
		return nil, err
	}

	result := make([]model.Transaction, 0, len(transfers))
	for _, tx := range transfers {
		if req.Type != nil && *req.Type != tx.Type {
			continue
		}
		if req.From != nil && tx.Timestamp.Before(*req.From) {
			continue
		}
		if req.To != nil && tx.Timestamp.After(*req.To) {
			continue
		}
		if req.MinAmount != nil {
			cmp, err := common.CompareAmounts(tx.Amount, *req.MinAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare min amount: %w", err)
			}
			if cmp < 0 {
				continue
			}
		}
		if req.MaxAmount != nil {
			cmp, err := common.CompareAmounts(tx.Amount, *req.MaxAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare max amount: %w", err)
			}
			if cmp > 0 {
				continue
			}
		}
		result = append(result, tx)
	}

	// Newest first
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	return &model.HistoryResponse{
		Address:      rec.Address,
		Transactions: result,
	}, nil
}
