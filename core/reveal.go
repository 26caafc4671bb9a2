package core

import (
	"context"
	"time"
)

// RevealSession tracks a secret currently visible in chat. The tracked
// message is retracted automatically once the session expires.
type RevealSession struct {
	UserID    string    `json:"user_id"`
	MessageID MessageID `json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RevealFunc displays the secret and returns the id of the message that
// carries it.
type RevealFunc func(ctx context.Context) (MessageID, error)

// RetractFunc hides the previously revealed message.
type RetractFunc func(ctx context.Context, id MessageID) error

type RevealTracker interface {
	// TryStart begins a reveal for userID unless one is already active,
	// in which case it fails with ErrRevealPending and schedules nothing.
	// The retraction runs exactly once after the configured window and
	// the session is dropped whether or not the retraction succeeds.
	TryStart(ctx context.Context, userID string, reveal RevealFunc, retract RetractFunc) (*RevealSession, error)
	Active(userID string) bool
	// Shutdown cancels all outstanding retractions without firing them.
	// Secrets already on screen stay on screen; this is the accepted
	// graceful-shutdown behavior.
	Shutdown()
}
