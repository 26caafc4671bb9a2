package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/store"
)

func New(
	proposals core.ProposalStore,
	wallets core.WalletStore,
	ledger core.LedgerService,
	logger *slog.Logger,
) core.TransferService {
	return &service{
		proposals: proposals,
		wallets:   wallets,
		ledger:    ledger,
		logger:    logger.With("service", "transfer"),
	}
}

type service struct {
	proposals core.ProposalStore
	wallets   core.WalletStore
	ledger    core.LedgerService
	logger    *slog.Logger
}

// Propose captures a transfer intent after cheap validation and a fresh
// balance check. The balance RPC runs before the insert, never under the
// store's lock; the insert itself resolves the create race, so concurrent
// proposals end with exactly one stored.
func (s *service) Propose(ctx context.Context, userID, recipient string, amount decimal.Decimal) (*core.TransferProposal, error) {
	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	to, err := s.ledger.ValidateAddress(recipient)
	if err != nil {
		return nil, core.ErrInvalidAddress
	}

	wallet, err := s.wallets.Find(ctx, userID)
	if err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrWalletNotFound
		}
		return nil, err
	}

	// cheap reject before touching the RPC node
	if _, err := s.proposals.Find(ctx, userID); err == nil {
		return nil, core.ErrAlreadyPending
	} else if !store.IsErrNotFound(err) {
		return nil, err
	}

	balance, err := s.ledger.GetBalance(ctx, wallet.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBalanceUnavailable, err)
	}

	if balance.Amount.LessThan(amount) {
		return nil, &core.InsufficientBalanceError{Observed: balance.Amount}
	}

	p := &core.TransferProposal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Recipient: to,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	if err := s.proposals.Create(ctx, p); err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, core.ErrAlreadyPending
		}
		return nil, err
	}

	s.logger.Info("proposal created", "user", userID, "proposal", p.ID, "recipient", recipient, "amount", amount)
	return p, nil
}

// Confirm re-validates balance and submits. Every terminal outcome removes
// the proposal; the removal happens before submission so a retry can never
// double-submit, even if the submission result is lost.
func (s *service) Confirm(ctx context.Context, userID string) (solana.Signature, error) {
	p, err := s.proposals.Find(ctx, userID)
	if err != nil {
		if store.IsErrNotFound(err) {
			return solana.Signature{}, core.ErrNoPendingProposal
		}
		return solana.Signature{}, err
	}

	wallet, err := s.wallets.Find(ctx, userID)
	if err != nil {
		if store.IsErrNotFound(err) {
			return solana.Signature{}, core.ErrWalletNotFound
		}
		return solana.Signature{}, err
	}

	balance, err := s.ledger.GetBalance(ctx, wallet.PublicKey)
	if err != nil {
		// transient; the proposal stays and confirm can be retried
		return solana.Signature{}, fmt.Errorf("%w: %v", core.ErrBalanceUnavailable, err)
	}

	if balance.Amount.LessThan(p.Amount) {
		if _, err := s.proposals.Delete(ctx, userID); err != nil {
			return solana.Signature{}, err
		}

		s.logger.Info("proposal dropped, balance fell below amount",
			"user", userID, "proposal", p.ID, "amount", p.Amount, "observed", balance.Amount)
		return solana.Signature{}, &core.InsufficientBalanceError{Observed: balance.Amount}
	}

	removed, err := s.proposals.Delete(ctx, userID)
	if err != nil {
		return solana.Signature{}, err
	}
	if !removed {
		// lost a race with cancel, sweep or another confirm
		return solana.Signature{}, core.ErrNoPendingProposal
	}

	sig, err := s.ledger.Submit(ctx, wallet.PrivateKey, p.Recipient, p.Amount)
	if err != nil {
		s.logger.Error("submit transfer", "user", userID, "proposal", p.ID, "err", err)
		return solana.Signature{}, &core.SubmissionError{Cause: err}
	}

	s.logger.Info("transfer submitted", "user", userID, "proposal", p.ID, "signature", sig)
	return sig, nil
}

func (s *service) Cancel(ctx context.Context, userID string) (bool, error) {
	removed, err := s.proposals.Delete(ctx, userID)
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.Info("proposal cancelled", "user", userID)
	}
	return removed, nil
}

// SweepExpired silently drops proposals older than maxAge. Users learn about
// the expiry only when a later confirm reports no pending proposal.
func (s *service) SweepExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	removed, err := s.proposals.DeleteExpired(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}

	for _, p := range removed {
		s.logger.Info("proposal expired", "user", p.UserID, "proposal", p.ID, "age", time.Since(p.CreatedAt))
	}

	return len(removed), nil
}
