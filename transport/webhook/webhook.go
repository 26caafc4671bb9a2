// Package webhook implements core.Messenger against a chat gateway that
// exposes message create/delete endpoints. The gateway owns the actual chat
// protocol; deleting a message that is already gone is its error to report.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/tipdao/chat-wallet/core"
)

type Config struct {
	CallbackURL string `valid:"url,required"`
}

func New(logger *slog.Logger, cfg Config) core.Messenger {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &messenger{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.With("transport", "webhook"),
		cfg:    cfg,
	}
}

type messenger struct {
	client *http.Client
	logger *slog.Logger
	cfg    Config
}

type sendRequest struct {
	UserID string `json:"user_id"`
	core.Reply
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

func (m *messenger) Send(ctx context.Context, userID string, reply core.Reply) (core.MessageID, error) {
	body, err := json.Marshal(sendRequest{UserID: userID, Reply: reply})
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.CallbackURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deliver message: %w", err)
	}
	defer discard(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deliver message: gateway returned %s", resp.Status)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}

	return core.MessageID(out.MessageID), nil
}

func (m *messenger) Delete(ctx context.Context, userID string, id core.MessageID) error {
	url := fmt.Sprintf("%s/messages/%s?user_id=%s", m.cfg.CallbackURL, id, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	defer discard(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete message: gateway returned %s", resp.Status)
	}

	return nil
}

func discard(r io.ReadCloser) {
	_, _ = io.Copy(io.Discard, r)
	_ = r.Close()
}
