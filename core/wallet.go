package core

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
)

type Wallet struct {
	UserID     string            `json:"user_id"`
	PublicKey  solana.PublicKey  `json:"public_key"`
	PrivateKey solana.PrivateKey `json:"-"`
	Mnemonic   string            `json:"-"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Address returns the base58 deposit address of the wallet.
func (w *Wallet) Address() string {
	return w.PublicKey.String()
}

type WalletStore interface {
	Create(ctx context.Context, wallet *Wallet) error
	Find(ctx context.Context, userID string) (*Wallet, error)
	List(ctx context.Context) ([]*Wallet, error)
}

type WalletService interface {
	// Provision returns the wallet owned by userID, generating one if
	// none exists. The second return reports whether a new wallet was
	// created by this call.
	Provision(ctx context.Context, userID string) (*Wallet, bool, error)
}
