package wallet

import (
	"context"
	"fmt"

	"pkwallet/internal/common"
	"pkwallet/internal/model"

	"github.com/shopspring/decimal"
)

// Balance reads the connected wallet's token and SOL balances. When a
// rate source is configured the response also carries the fiat rate and
// the token balance converted to fiat; a price-feed failure is logged
// and leaves those columns empty, the chain balances stand on their own.
func (s *Service) Balance(ctx context.Context) (*model.BalanceResponse, error) {
	rec, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	owner, err := s.ownerKey(rec)
	if err != nil {
		return nil, err
	}

	tokenMinor, err := s.chain.TokenBalance(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	solLamports, err := s.chain.SolBalance(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get SOL balance: %w", err)
	}

	resp := &model.BalanceResponse{
		Address: rec.Address,
		USDC:    common.MinorToAmount(tokenMinor),
		SOL:     common.LamportsToSOL(solLamports),
	}

	if s.rates != nil {
		rate, err := s.rates.TokenFiatRate(ctx)
		if err != nil {
			s.logger.Warn("failed to get fiat rate", "err", err)
			return resp, nil
		}
		fiat, err := fiatValue(resp.USDC, rate)
		if err != nil {
			s.logger.Warn("failed to convert balance to fiat", "err", err)
			return resp, nil
		}
		resp.Rate = rate
		resp.Fiat = fiat
	}

	return resp, nil
}

// fiatValue multiplies the token amount by the rate without float math.
func fiatValue(amount, rate string) (string, error) {
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return "", fmt.Errorf("failed to parse rate %q: %w", rate, err)
	}
	return a.Mul(r).StringFixed(2), nil
}
