package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pkwallet/internal/common"
	"pkwallet/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaClient is a read-mostly client for the Solana RPC node. It never
// holds key material: signing happens at the passkey portal and
// submission goes through the relay.
type SolanaClient struct {
	rpcClient  *rpc.Client
	mint       solana.PublicKey
	commitment rpc.CommitmentType
}

// NewSolanaClient creates a client bound to one token mint.
func NewSolanaClient(rpcURL, mintAddress, commitment string) (*SolanaClient, error) {
	mint, err := solana.PublicKeyFromBase58(mintAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid token mint address: %w", err)
	}

	switch rpc.CommitmentType(commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return nil, fmt.Errorf("invalid commitment level %q", commitment)
	}

	return &SolanaClient{
		rpcClient:  rpc.New(rpcURL),
		mint:       mint,
		commitment: rpc.CommitmentType(commitment),
	}, nil
}

// Mint returns the token mint the client serves.
func (c *SolanaClient) Mint() solana.PublicKey {
	return c.mint
}

// AssociatedTokenAddress derives the holding account for owner and the
// client's mint.
func (c *SolanaClient) AssociatedTokenAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, c.mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find associated token account address: %w", err)
	}
	return ata, nil
}

// SolBalance gets the SOL balance in lamports.
func (c *SolanaClient) SolBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	balance, err := c.rpcClient.GetBalance(ctx, owner, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return balance.Value, nil
}

// TokenBalance gets the token balance in minor units. A wallet whose
// associated token account does not exist yet simply has a zero
// balance; passkey wallets are created empty.
func (c *SolanaClient) TokenBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	ata, err := c.AssociatedTokenAddress(owner)
	if err != nil {
		return 0, err
	}

	balance, err := c.rpcClient.GetTokenAccountBalance(ctx, ata, c.commitment)
	if err != nil {
		if isNotFoundError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get token account balance: %w", err)
	}
	if balance.Value == nil {
		return 0, nil
	}

	amount, err := strconv.ParseUint(balance.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token balance amount: %w", err)
	}
	return amount, nil
}

// TokenAccountExists reports whether the given token account is
// initialized on chain.
func (c *SolanaClient) TokenAccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	info, err := c.rpcClient.GetAccountInfo(ctx, account)
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get account info: %w", err)
	}
	return info.Value != nil, nil
}

// LatestBlockhash fetches the blockhash a new transaction must
// reference.
func (c *SolanaClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	return recent.Value.Blockhash, nil
}

// SignatureStatus looks up the confirmation state of a submitted
// signature.
func (c *SolanaClient) SignatureStatus(ctx context.Context, sig solana.Signature) (*model.SignatureStatus, error) {
	out, err := c.rpcClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to get signature status: %w", err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return &model.SignatureStatus{Found: false}, nil
	}

	st := out.Value[0]
	return &model.SignatureStatus{
		Found:              true,
		Failed:             st.Err != nil,
		ConfirmationStatus: string(st.ConfirmationStatus),
	}, nil
}

// TokenTransfers gets the wallet's token transfer history for the
// client's mint, newest data unordered (the caller sorts). Sponsored
// sends show up with the relay as fee payer.
func (c *SolanaClient) TokenTransfers(ctx context.Context, owner solana.PublicKey, limit int) ([]model.Transaction, error) {
	ata, err := c.AssociatedTokenAddress(owner)
	if err != nil {
		return nil, err
	}

	// A wallet with no token account has no token history.
	exists, err := c.TokenAccountExists(ctx, ata)
	if err != nil {
		return nil, fmt.Errorf("failed to check token account: %w", err)
	}
	if !exists {
		return []model.Transaction{}, nil
	}

	sigs, err := c.rpcClient.GetSignaturesForAddressWithOpts(
		ctx,
		ata,
		&rpc.GetSignaturesForAddressOpts{
			Limit: &limit,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(sigs))
	maxVersion := uint64(0)
	for _, sigInfo := range sigs {
		tx, err := c.rpcClient.GetTransaction(
			ctx,
			sigInfo.Signature,
			&rpc.GetTransactionOpts{
				Encoding:                       solana.EncodingBase64,
				MaxSupportedTransactionVersion: &maxVersion,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get transaction %s: %w", sigInfo.Signature, err)
		}

		parsed, ok := c.parseTokenTransfer(tx, sigInfo.Signature, owner)
		if ok {
			transactions = append(transactions, parsed)
		}
	}

	return transactions, nil
}

// parseTokenTransfer extracts the owner's token movement from a
// transaction. Transactions without a movement for our mint and owner
// (account creation, unrelated instructions) are skipped.
func (c *SolanaClient) parseTokenTransfer(tx *rpc.GetTransactionResult, signature solana.Signature, owner solana.PublicKey) (model.Transaction, bool) {
	if tx == nil || tx.Meta == nil {
		return model.Transaction{}, false
	}

	timestamp := time.Now()
	if tx.BlockTime != nil {
		timestamp = time.Unix(int64(*tx.BlockTime), 0)
	}

	status := "success"
	if tx.Meta.Err != nil {
		status = "failed"
	}

	// Per-owner deltas for our mint
	deltas := make(map[string]int64)
	for _, pre := range tx.Meta.PreTokenBalances {
		if pre.Mint.Equals(c.mint) && pre.Owner != nil {
			amt, _ := strconv.ParseUint(pre.UiTokenAmount.Amount, 10, 64)
			deltas[pre.Owner.String()] -= int64(amt)
		}
	}
	for _, post := range tx.Meta.PostTokenBalances {
		if post.Mint.Equals(c.mint) && post.Owner != nil {
			amt, _ := strconv.ParseUint(post.UiTokenAmount.Amount, 10, 64)
			deltas[post.Owner.String()] += int64(amt)
		}
	}

	ownerStr := owner.String()
	ourDelta := deltas[ownerStr]
	if ourDelta == 0 {
		return model.Transaction{}, false
	}

	var from, to string
	var amount uint64
	var txType model.TransactionType

	if ourDelta > 0 {
		txType = model.TransactionTypeDebit
		amount = uint64(ourDelta)
		to = ownerStr
		for counterparty, delta := range deltas {
			if delta < 0 {
				from = counterparty
				break
			}
		}
	} else {
		txType = model.TransactionTypeCredit
		amount = uint64(-ourDelta)
		from = ownerStr
		for counterparty, delta := range deltas {
			if delta > 0 {
				to = counterparty
				break
			}
		}
	}

	// Sponsored = someone else paid the fee. The fee payer is the
	// first account of the message; for relay-sponsored sends that is
	// the relay, not the wallet.
	sponsored := false
	if decoded, err := tx.Transaction.GetTransaction(); err == nil {
		keys := decoded.Message.AccountKeys
		if len(keys) > 0 && !keys[0].Equals(owner) {
			sponsored = true
		}
	}

	return model.Transaction{
		Type:        txType,
		TxID:        signature.String(),
		From:        from,
		To:          to,
		Amount:      common.MinorToAmount(amount),
		Sponsored:   sponsored,
		Timestamp:   timestamp,
		BlockNumber: int64(tx.Slot),
		Status:      status,
	}, true
}

// isNotFoundError checks if the RPC error indicates a missing account
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "could not find account") ||
		strings.Contains(errStr, "not found")
}
