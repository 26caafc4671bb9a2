package core

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// TransferProposal is a not-yet-submitted transfer awaiting explicit user
// confirmation. Proposals are immutable; a user owns at most one at a time.
type TransferProposal struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Recipient solana.PublicKey `json:"recipient"`
	Amount    decimal.Decimal  `json:"amount"`
	CreatedAt time.Time        `json:"created_at"`
}

type ProposalStore interface {
	// Create stores the proposal, failing if one already exists for the
	// proposal's user. The existence check and the insert are atomic.
	Create(ctx context.Context, proposal *TransferProposal) error
	Find(ctx context.Context, userID string) (*TransferProposal, error)
	// Delete removes the user's proposal and reports whether one existed.
	Delete(ctx context.Context, userID string) (bool, error)
	// DeleteExpired removes every proposal created before the cutoff and
	// returns the removed proposals.
	DeleteExpired(ctx context.Context, cutoff time.Time) ([]*TransferProposal, error)
}

type TransferService interface {
	Propose(ctx context.Context, userID, recipient string, amount decimal.Decimal) (*TransferProposal, error)
	Confirm(ctx context.Context, userID string) (solana.Signature, error)
	Cancel(ctx context.Context, userID string) (bool, error)
	SweepExpired(ctx context.Context, maxAge time.Duration) (int, error)
}
