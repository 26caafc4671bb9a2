package core

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Balance is an account balance in both display and raw units.
type Balance struct {
	Amount   decimal.Decimal `json:"amount"`
	Lamports uint64          `json:"lamports"`
}

// TransferRecord is a single entry of an account's on-chain history.
type TransferRecord struct {
	Signature solana.Signature `json:"signature"`
	Slot      uint64           `json:"slot"`
	BlockTime *time.Time       `json:"block_time,omitempty"`
	Failed    bool             `json:"failed,omitempty"`
	Memo      string           `json:"memo,omitempty"`
}

type BalanceOracle interface {
	// GetBalance fetches the current balance, never a cached one. A
	// transient RPC failure surfaces as ErrBalanceUnavailable, never as
	// a zero balance.
	GetBalance(ctx context.Context, key solana.PublicKey) (*Balance, error)
}

type LedgerSubmitter interface {
	ValidateAddress(address string) (solana.PublicKey, error)
	Submit(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, amount decimal.Decimal) (solana.Signature, error)
}

type LedgerService interface {
	BalanceOracle
	LedgerSubmitter

	RequestAirdrop(ctx context.Context, key solana.PublicKey, amount decimal.Decimal) (solana.Signature, error)
	ListTransfers(ctx context.Context, key solana.PublicKey, limit int) ([]*TransferRecord, error)
}
