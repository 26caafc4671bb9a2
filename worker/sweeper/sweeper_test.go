package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/tipdao/chat-wallet/core"
)

type fakeTransfers struct {
	sweeps atomic.Int32
}

func (f *fakeTransfers) Propose(ctx context.Context, userID, recipient string, amount decimal.Decimal) (*core.TransferProposal, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTransfers) Confirm(ctx context.Context, userID string) (solana.Signature, error) {
	return solana.Signature{}, errors.New("not implemented")
}

func (f *fakeTransfers) Cancel(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

func (f *fakeTransfers) SweepExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	f.sweeps.Add(1)
	return 0, nil
}

func TestRunSweepsUntilCancelled(t *testing.T) {
	transferz := &fakeTransfers{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New(transferz, logger, Config{Interval: 10 * time.Millisecond, MaxAge: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(time.Second)
	for transferz.sweeps.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
