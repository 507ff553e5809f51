package wallet

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"pkwallet/internal/common"
	"pkwallet/internal/metrics"
	"pkwallet/internal/model"
	"pkwallet/internal/portal"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/google/uuid"
)

// PrepareTransfer validates the transfer request, builds the unsigned
// sponsored transaction and returns the portal URL where the user signs
// it with their passkey. The calls run strictly in sequence: balance
// read, recipient account check, instruction build, blockhash fetch.
func (s *Service) PrepareTransfer(ctx context.Context, req *model.TransferRequest) (*model.TransferPreparedResponse, error) {
	rec, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	if !common.IsValidAddress(req.ToAddress) {
		return nil, fmt.Errorf("invalid recipient address")
	}
	if req.ToAddress == rec.Address {
		return nil, fmt.Errorf("invalid recipient: cannot send to yourself")
	}

	minor, err := common.AmountToMinor(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	owner, err := s.ownerKey(rec)
	if err != nil {
		return nil, err
	}

	balance, err := s.chain.TokenBalance(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}
	if balance < minor {
		return nil, fmt.Errorf("insufficient balance: have %s, need %s",
			common.MinorToAmount(balance), common.MinorToAmount(minor))
	}

	recipient, err := solana.PublicKeyFromBase58(req.ToAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	unsigned, err := s.buildTransfer(ctx, owner, recipient, minor)
	if err != nil {
		return nil, err
	}

	p := &model.PendingTransfer{
		ID:          uuid.NewString(),
		ToAddress:   req.ToAddress,
		Amount:      req.Amount,
		AmountMinor: minor,
		UnsignedTx:  unsigned,
		CreatedAt:   time.Now(),
	}
	s.addPending(p)

	return &model.TransferPreparedResponse{
		RequestID: p.ID,
		SignURL:   s.portal.SignURL(unsigned, p.ID, s.callbackURL+"/wallet/transfer/callback"),
		Amount:    common.MinorToAmount(minor),
	}, nil
}

// buildTransfer assembles the unsigned sponsored transfer: both
// associated token addresses, a recipient existence check, one
// TransferChecked instruction and a fresh blockhash, with the relay's
// account as fee payer.
func (s *Service) buildTransfer(ctx context.Context, owner, recipient solana.PublicKey, minor uint64) (string, error) {
	mint := s.chain.Mint()

	sourceATA, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return "", fmt.Errorf("failed to derive source token account: %w", err)
	}
	destATA, _, err := solana.FindAssociatedTokenAddress(recipient, mint)
	if err != nil {
		return "", fmt.Errorf("failed to derive recipient token account: %w", err)
	}

	// The relay does not cover account creation rent, so a missing
	// recipient account is a hard stop rather than a create-and-send.
	exists, err := s.chain.TokenAccountExists(ctx, destATA)
	if err != nil {
		return "", fmt.Errorf("failed to check recipient token account: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("recipient token account %s is not initialized", destATA)
	}

	feePayer, err := s.relay.FeePayer(ctx)
	if err != nil {
		return "", err
	}

	blockhash, err := s.chain.LatestBlockhash(ctx)
	if err != nil {
		return "", err
	}

	transferInstruction := token.NewTransferCheckedInstruction(
		minor,
		common.TokenDecimals,
		sourceATA,
		mint,
		destATA,
		owner,
		[]solana.PublicKey{},
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{transferInstruction},
		blockhash,
		solana.TransactionPayer(feePayer),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	encoded, err := tx.ToBase64()
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction: %w", err)
	}
	return encoded, nil
}

// CompleteTransfer handles the portal's sign callback: consumes the
// pending transfer exactly once and hands the signed transaction to the
// relay, which adds its fee payment and submits.
func (s *Service) CompleteTransfer(ctx context.Context, q url.Values) (*model.TransferSubmittedResponse, error) {
	res, err := portal.ParseSignCallback(q)
	if err != nil {
		metrics.Transfers.WithLabelValues("cancelled").Inc()
		return nil, err
	}

	p, ok := s.takePending(res.RequestID)
	if !ok {
		return nil, fmt.Errorf("invalid transfer request: unknown or expired request id")
	}

	sig, err := s.relay.Submit(ctx, res.SignedTx)
	if err != nil {
		metrics.Transfers.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.Transfers.WithLabelValues("ok").Inc()
	s.logger.Info("sponsored transfer submitted",
		"txId", sig,
		"to", common.TruncateAddress(p.ToAddress, 4, 4),
		"amount", p.Amount)

	return &model.TransferSubmittedResponse{TxID: sig}, nil
}
