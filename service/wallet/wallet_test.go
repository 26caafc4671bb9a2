package wallet

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/tyler-smith/go-bip39"

	walletstore "github.com/tipdao/chat-wallet/store/wallet"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvisionIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := New(walletstore.New(), testLogger())

	first, created, err := svc.Provision(ctx, "alice")
	if err != nil {
		t.Fatalf("Provision() = %v", err)
	}
	if !created {
		t.Fatal("first Provision() reported created=false")
	}

	second, created, err := svc.Provision(ctx, "alice")
	if err != nil {
		t.Fatalf("second Provision() = %v", err)
	}
	if created {
		t.Fatal("second Provision() reported created=true")
	}
	if !second.PublicKey.Equals(first.PublicKey) {
		t.Errorf("second Provision() returned a different wallet: %s vs %s", second.Address(), first.Address())
	}
}

func TestProvisionKeyMaterial(t *testing.T) {
	ctx := context.Background()
	svc := New(walletstore.New(), testLogger())

	w, _, err := svc.Provision(ctx, "alice")
	if err != nil {
		t.Fatalf("Provision() = %v", err)
	}

	if !bip39.IsMnemonicValid(w.Mnemonic) {
		t.Errorf("mnemonic %q is not a valid BIP39 phrase", w.Mnemonic)
	}
	if len(w.PrivateKey) != 64 {
		t.Errorf("private key length = %d, want 64", len(w.PrivateKey))
	}
	if !w.PrivateKey.PublicKey().Equals(w.PublicKey) {
		t.Error("stored public key does not match the private key")
	}
}

func TestProvisionDistinctUsers(t *testing.T) {
	ctx := context.Background()
	svc := New(walletstore.New(), testLogger())

	a, _, err := svc.Provision(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := svc.Provision(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}

	if a.PublicKey.Equals(b.PublicKey) {
		t.Error("two users share a keypair")
	}
}
