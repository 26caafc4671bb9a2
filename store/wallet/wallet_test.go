package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/store"
)

func TestCreateFindList(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Find(ctx, "alice"); !store.IsErrNotFound(err) {
		t.Fatalf("Find(missing) = %v, want ErrNotFound", err)
	}

	w := &core.Wallet{UserID: "alice"}
	if err := s.Create(ctx, w); err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if err := s.Create(ctx, &core.Wallet{UserID: "alice"}); !errors.Is(err, store.ErrExists) {
		t.Fatalf("second Create() = %v, want ErrExists", err)
	}

	got, err := s.Find(ctx, "alice")
	if err != nil {
		t.Fatalf("Find() = %v", err)
	}
	if got != w {
		t.Error("Find() returned a different record than the one stored")
	}

	wallets, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() = %v", err)
	}
	if len(wallets) != 1 {
		t.Fatalf("List() returned %d wallets, want 1", len(wallets))
	}
}
