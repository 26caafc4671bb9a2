package core

import "context"

// MessageID identifies a delivered chat message within the transport.
type MessageID string

type Button struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Reply is what the core hands back to the transport for rendering.
type Reply struct {
	Text     string   `json:"text"`
	Markdown bool     `json:"markdown,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`
	QR       []byte   `json:"qr,omitempty"`
}

// Messenger is the outbound side of the chat transport. Delete may fail if
// the message or chat no longer exists; callers decide whether that matters.
type Messenger interface {
	Send(ctx context.Context, userID string, reply Reply) (MessageID, error)
	Delete(ctx context.Context, userID string, id MessageID) error
}
