package wallet

import (
	"context"
	"sync"

	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/store"
)

// New returns an in-memory wallet registry. Records are write-once and live
// for the process lifetime; there is deliberately no delete or update path.
func New() core.WalletStore {
	return &walletStore{
		wallets: map[string]*core.Wallet{},
	}
}

type walletStore struct {
	mux     sync.RWMutex
	wallets map[string]*core.Wallet
}

func (s *walletStore) Create(_ context.Context, wallet *core.Wallet) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.wallets[wallet.UserID]; ok {
		return store.ErrExists
	}

	s.wallets[wallet.UserID] = wallet
	return nil
}

func (s *walletStore) Find(_ context.Context, userID string) (*core.Wallet, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	w, ok := s.wallets[userID]
	if !ok {
		return nil, store.ErrNotFound
	}

	return w, nil
}

func (s *walletStore) List(_ context.Context) ([]*core.Wallet, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	wallets := make([]*core.Wallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		wallets = append(wallets, w)
	}

	return wallets, nil
}
