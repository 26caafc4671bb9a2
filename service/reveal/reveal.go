package reveal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/tipdao/chat-wallet/core"
)

// retractTimeout bounds the retraction side effect; the timer goroutine is
// not tied to any request context.
const retractTimeout = 15 * time.Second

var errClosed = errors.New("reveal tracker closed")

type Config struct {
	// Window is how long a revealed secret stays visible.
	Window time.Duration `valid:"required"`
}

func New(logger *slog.Logger, cfg Config) core.RevealTracker {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &tracker{
		sessions: map[string]*session{},
		logger:   logger.With("service", "reveal"),
		cfg:      cfg,
	}
}

type session struct {
	core.RevealSession
	timer *time.Timer
}

type tracker struct {
	mux      sync.Mutex
	sessions map[string]*session
	closed   bool
	logger   *slog.Logger
	cfg      Config
}

func (t *tracker) TryStart(ctx context.Context, userID string, reveal core.RevealFunc, retract core.RetractFunc) (*core.RevealSession, error) {
	now := time.Now()
	s := &session{
		RevealSession: core.RevealSession{
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(t.cfg.Window),
		},
	}

	// Reserve the slot before the network call so a concurrent TryStart
	// for the same user fails instead of revealing twice.
	t.mux.Lock()
	if t.closed {
		t.mux.Unlock()
		return nil, errClosed
	}
	if _, ok := t.sessions[userID]; ok {
		t.mux.Unlock()
		return nil, core.ErrRevealPending
	}
	t.sessions[userID] = s
	t.mux.Unlock()

	id, err := reveal(ctx)
	if err != nil {
		t.drop(userID)
		return nil, fmt.Errorf("reveal secret: %w", err)
	}

	t.mux.Lock()
	if t.closed {
		t.mux.Unlock()
		t.logger.Warn("revealed during shutdown, secret stays on screen", "user", userID)
		return nil, errClosed
	}
	s.MessageID = id
	s.timer = time.AfterFunc(t.cfg.Window, func() {
		t.retract(userID, id, retract)
	})
	t.mux.Unlock()

	t.logger.Info("reveal started", "user", userID, "expires_at", s.ExpiresAt)
	return &s.RevealSession, nil
}

// retract runs in the timer goroutine. The session entry is dropped no
// matter how the side effect went; a wedged entry would block every future
// reveal for the user.
func (t *tracker) retract(userID string, id core.MessageID, retract core.RetractFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), retractTimeout)
	defer cancel()

	if err := retract(ctx, id); err != nil {
		t.logger.Error("retract secret message", "user", userID, "message", id, "err", err)
	} else {
		t.logger.Info("secret retracted", "user", userID, "message", id)
	}

	t.drop(userID)
}

func (t *tracker) drop(userID string) {
	t.mux.Lock()
	delete(t.sessions, userID)
	t.mux.Unlock()
}

func (t *tracker) Active(userID string) bool {
	t.mux.Lock()
	defer t.mux.Unlock()

	_, ok := t.sessions[userID]
	return ok
}

func (t *tracker) Shutdown() {
	t.mux.Lock()
	defer t.mux.Unlock()

	if t.closed {
		return
	}
	t.closed = true

	for userID, s := range t.sessions {
		if s.timer != nil {
			s.timer.Stop()
		}
		delete(t.sessions, userID)
	}

	t.logger.Info("reveal tracker stopped")
}
