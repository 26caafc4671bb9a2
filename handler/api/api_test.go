package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/handler/bot"
	"github.com/tipdao/chat-wallet/service/reveal"
	"github.com/tipdao/chat-wallet/service/transfer"
	"github.com/tipdao/chat-wallet/service/wallet"
	proposalstore "github.com/tipdao/chat-wallet/store/proposal"
	walletstore "github.com/tipdao/chat-wallet/store/wallet"
)

type stubLedger struct{}

func (stubLedger) GetBalance(ctx context.Context, key solana.PublicKey) (*core.Balance, error) {
	return &core.Balance{Amount: decimal.NewFromInt(1), Lamports: 1_000_000_000}, nil
}

func (stubLedger) ValidateAddress(address string) (solana.PublicKey, error) {
	return solana.PublicKeyFromBase58(address)
}

func (stubLedger) Submit(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, amount decimal.Decimal) (solana.Signature, error) {
	return solana.Signature{1}, nil
}

func (stubLedger) RequestAirdrop(ctx context.Context, key solana.PublicKey, amount decimal.Decimal) (solana.Signature, error) {
	return solana.Signature{2}, nil
}

func (stubLedger) ListTransfers(ctx context.Context, key solana.PublicKey, limit int) ([]*core.TransferRecord, error) {
	return nil, nil
}

type stubMessenger struct{}

func (stubMessenger) Send(ctx context.Context, userID string, reply core.Reply) (core.MessageID, error) {
	return "m1", nil
}

func (stubMessenger) Delete(ctx context.Context, userID string, id core.MessageID) error {
	return nil
}

func newServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wallets := walletstore.New()
	reveals := reveal.New(logger, reveal.Config{Window: time.Minute})
	t.Cleanup(reveals.Shutdown)

	coordinator := bot.New(
		wallets,
		wallet.New(wallets, logger),
		reveals,
		transfer.New(proposalstore.New(), wallets, stubLedger{}, logger),
		stubLedger{},
		stubMessenger{},
		logger,
		bot.Config{AirdropAmount: "1", HistoryLimit: 10},
	)

	return New(coordinator, logger)
}

func TestHandleCommand(t *testing.T) {
	h := newServer(t).Handler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantText   string
	}{
		{"malformed body", "{", http.StatusBadRequest, ""},
		{"missing user", `{"command":"start"}`, http.StatusBadRequest, ""},
		{"missing command", `{"user_id":"7"}`, http.StatusBadRequest, ""},
		{"start", `{"user_id":"7","command":"start"}`, http.StatusOK, "Wallet created"},
		{"unknown", `{"user_id":"7","command":"dance"}`, http.StatusOK, "Unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantText == "" {
				return
			}

			var reply core.Reply
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
			require.Contains(t, reply.Text, tt.wantText)
		})
	}
}
