package wallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/store"
	"github.com/tyler-smith/go-bip39"
)

func New(wallets core.WalletStore, logger *slog.Logger) core.WalletService {
	return &service{
		wallets: wallets,
		logger:  logger.With("service", "wallet"),
	}
}

type service struct {
	wallets core.WalletStore
	logger  *slog.Logger
}

func (s *service) Provision(ctx context.Context, userID string) (*core.Wallet, bool, error) {
	if w, err := s.wallets.Find(ctx, userID); err == nil {
		return w, false, nil
	} else if !store.IsErrNotFound(err) {
		return nil, false, err
	}

	w, err := generate(userID)
	if err != nil {
		return nil, false, err
	}

	if err := s.wallets.Create(ctx, w); err != nil {
		if errors.Is(err, store.ErrExists) {
			// lost a provisioning race; the stored record wins
			w, err := s.wallets.Find(ctx, userID)
			return w, false, err
		}

		return nil, false, err
	}

	s.logger.Info("wallet provisioned", "user", userID, "address", w.Address())
	return w, true, nil
}

// generate derives a fresh keypair from a BIP39 mnemonic so a recovery
// phrase can be surfaced alongside the raw key material.
func generate(userID string) (*core.Wallet, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}

	seed := bip39.NewSeed(mnemonic, "")
	key := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]))

	return &core.Wallet{
		UserID:     userID,
		PublicKey:  key.PublicKey(),
		PrivateKey: key,
		Mnemonic:   mnemonic,
		CreatedAt:  time.Now(),
	}, nil
}
