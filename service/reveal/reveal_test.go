package reveal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tipdao/chat-wallet/core"
)

func newTracker(window time.Duration) core.RevealTracker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, Config{Window: window})
}

func sendOK(ctx context.Context) (core.MessageID, error) {
	return "msg-1", nil
}

func TestTryStartRejectsWhilePending(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(time.Minute)

	var retractions atomic.Int32
	retract := func(ctx context.Context, id core.MessageID) error {
		retractions.Add(1)
		return nil
	}

	s, err := tr.TryStart(ctx, "alice", sendOK, retract)
	require.NoError(t, err)
	require.Equal(t, core.MessageID("msg-1"), s.MessageID)
	require.True(t, tr.Active("alice"))

	_, err = tr.TryStart(ctx, "alice", sendOK, retract)
	require.ErrorIs(t, err, core.ErrRevealPending)

	// a different user is unaffected
	_, err = tr.TryStart(ctx, "bob", sendOK, retract)
	require.NoError(t, err)

	require.Zero(t, retractions.Load(), "no retraction may fire before the window")
	tr.Shutdown()
}

func TestRetractionFiresOnce(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(30 * time.Millisecond)

	var retractions atomic.Int32
	retract := func(ctx context.Context, id core.MessageID) error {
		retractions.Add(1)
		return nil
	}

	_, err := tr.TryStart(ctx, "alice", sendOK, retract)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return retractions.Load() == 1 && !tr.Active("alice")
	}, time.Second, 5*time.Millisecond)

	// nothing else fires later
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), retractions.Load())
}

func TestEntryClearedWhenRetractFails(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(30 * time.Millisecond)

	retract := func(ctx context.Context, id core.MessageID) error {
		return errors.New("message already gone")
	}

	_, err := tr.TryStart(ctx, "alice", sendOK, retract)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return !tr.Active("alice")
	}, time.Second, 5*time.Millisecond)

	// the failed retraction must not wedge future reveals
	_, err = tr.TryStart(ctx, "alice", sendOK, retract)
	require.NoError(t, err)
}

func TestRevealFailureRollsBackReservation(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(time.Minute)

	sendErr := func(ctx context.Context) (core.MessageID, error) {
		return "", errors.New("chat unreachable")
	}
	retract := func(ctx context.Context, id core.MessageID) error { return nil }

	_, err := tr.TryStart(ctx, "alice", sendErr, retract)
	require.Error(t, err)
	require.False(t, tr.Active("alice"))

	_, err = tr.TryStart(ctx, "alice", sendOK, retract)
	require.NoError(t, err)
	tr.Shutdown()
}

func TestShutdownCancelsTimers(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(30 * time.Millisecond)

	var retractions atomic.Int32
	retract := func(ctx context.Context, id core.MessageID) error {
		retractions.Add(1)
		return nil
	}

	_, err := tr.TryStart(ctx, "alice", sendOK, retract)
	require.NoError(t, err)

	tr.Shutdown()
	require.False(t, tr.Active("alice"))

	time.Sleep(80 * time.Millisecond)
	require.Zero(t, retractions.Load(), "cancelled timer must not fire")

	_, err = tr.TryStart(ctx, "bob", sendOK, retract)
	require.Error(t, err, "no new reveals after shutdown")
}
