package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/pandodao/generic"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/store"
	"github.com/zyedidia/generic/mapset"
)

type Command string

const (
	CommandStart   Command = "start"
	CommandDeposit Command = "deposit"
	CommandBalance Command = "balance"
	CommandExport  Command = "export"
	CommandSend    Command = "send"
	CommandConfirm Command = "confirm"
	CommandCancel  Command = "cancel"
	CommandAirdrop Command = "airdrop"
	CommandHistory Command = "history"
)

type Config struct {
	// AirdropAmount is the fixed faucet amount handed out per request.
	AirdropAmount string `valid:"required"`
	HistoryLimit  int    `valid:"required"`
}

func New(
	wallets core.WalletStore,
	walletz core.WalletService,
	reveals core.RevealTracker,
	transferz core.TransferService,
	ledger core.LedgerService,
	messenger core.Messenger,
	logger *slog.Logger,
	cfg Config,
) *Coordinator {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	needsWallet := mapset.New[Command]()
	for _, cmd := range []Command{
		CommandDeposit, CommandBalance, CommandExport,
		CommandSend, CommandConfirm, CommandCancel,
		CommandAirdrop, CommandHistory,
	} {
		needsWallet.Put(cmd)
	}

	return &Coordinator{
		wallets:       wallets,
		walletz:       walletz,
		reveals:       reveals,
		transferz:     transferz,
		ledger:        ledger,
		messenger:     messenger,
		logger:        logger.With("server", "bot"),
		needsWallet:   needsWallet,
		airdropAmount: generic.Must(decimal.NewFromString(cfg.AirdropAmount)),
		historyLimit:  cfg.HistoryLimit,
	}
}

// Coordinator maps an inbound chat command to the wallet, reveal and
// transfer operations and renders the outcome into a Reply. No operation
// error escapes it.
type Coordinator struct {
	wallets   core.WalletStore
	walletz   core.WalletService
	reveals   core.RevealTracker
	transferz core.TransferService
	ledger    core.LedgerService
	messenger core.Messenger
	logger    *slog.Logger

	needsWallet   mapset.Set[Command]
	airdropAmount decimal.Decimal
	historyLimit  int
}

func (c *Coordinator) Handle(ctx context.Context, userID string, cmd Command, args []string) core.Reply {
	commandsTotal.WithLabelValues(string(cmd)).Inc()

	if c.needsWallet.Has(cmd) {
		if _, err := c.wallets.Find(ctx, userID); err != nil {
			if store.IsErrNotFound(err) {
				return textReply("You don't have a wallet yet. Send /start to create one.")
			}
			return c.fatal(userID, cmd, err)
		}
	}

	switch cmd {
	case CommandStart:
		return c.handleStart(ctx, userID)
	case CommandDeposit:
		return c.handleDeposit(ctx, userID)
	case CommandBalance:
		return c.handleBalance(ctx, userID)
	case CommandExport:
		return c.handleExport(ctx, userID)
	case CommandSend:
		return c.handleSend(ctx, userID, args)
	case CommandConfirm:
		return c.handleConfirm(ctx, userID)
	case CommandCancel:
		return c.handleCancel(ctx, userID)
	case CommandAirdrop:
		return c.handleAirdrop(ctx, userID)
	case CommandHistory:
		return c.handleHistory(ctx, userID)
	default:
		return textReply("Unknown command. Try /balance, /deposit, /send, /airdrop or /history.")
	}
}

func (c *Coordinator) handleStart(ctx context.Context, userID string) core.Reply {
	w, created, err := c.walletz.Provision(ctx, userID)
	if err != nil {
		return c.fatal(userID, CommandStart, err)
	}

	if !created {
		return markdownReply(fmt.Sprintf("You already have a wallet.\nAddress: `%s`", w.Address()))
	}

	return markdownReply(fmt.Sprintf(
		"Wallet created!\nAddress: `%s`\n\nUse /export to see your recovery phrase - it will self-delete shortly after.",
		w.Address(),
	))
}

func (c *Coordinator) handleDeposit(ctx context.Context, userID string) core.Reply {
	w, err := c.wallets.Find(ctx, userID)
	if err != nil {
		return c.fatal(userID, CommandDeposit, err)
	}

	png, err := qrcode.Encode(w.Address(), qrcode.Medium, 256)
	if err != nil {
		return c.fatal(userID, CommandDeposit, err)
	}

	return core.Reply{
		Text:     fmt.Sprintf("Send SOL to:\n`%s`", w.Address()),
		Markdown: true,
		QR:       png,
	}
}

func (c *Coordinator) handleBalance(ctx context.Context, userID string) core.Reply {
	w, err := c.wallets.Find(ctx, userID)
	if err != nil {
		return c.fatal(userID, CommandBalance, err)
	}

	balance, err := c.ledger.GetBalance(ctx, w.PublicKey)
	if err != nil {
		return c.replyForError(userID, CommandBalance, fmt.Errorf("%w: %v", core.ErrBalanceUnavailable, err))
	}

	return textReply(fmt.Sprintf("Balance: %s SOL (%d lamports)", balance.Amount, balance.Lamports))
}

func (c *Coordinator) handleExport(ctx context.Context, userID string) core.Reply {
	w, err := c.wallets.Find(ctx, userID)
	if err != nil {
		return c.fatal(userID, CommandExport, err)
	}

	secret := fmt.Sprintf(
		"Recovery phrase:\n`%s`\n\nPrivate key:\n`%s`\n\nThis message will self-delete.",
		w.Mnemonic, w.PrivateKey.String(),
	)

	session, err := c.reveals.TryStart(ctx, userID,
		func(ctx context.Context) (core.MessageID, error) {
			return c.messenger.Send(ctx, userID, markdownReply(secret))
		},
		func(ctx context.Context, id core.MessageID) error {
			return c.messenger.Delete(ctx, userID, id)
		},
	)
	if err != nil {
		return c.replyForError(userID, CommandExport, err)
	}

	return textReply(fmt.Sprintf("Your secret is on screen above and disappears at %s.",
		session.ExpiresAt.Format("15:04:05")))
}

func (c *Coordinator) handleSend(ctx context.Context, userID string, args []string) core.Reply {
	if len(args) != 2 {
		return textReply("Usage: /send <address> <amount>")
	}

	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return c.replyForError(userID, CommandSend, core.ErrInvalidAmount)
	}

	p, err := c.transferz.Propose(ctx, userID, args[0], amount)
	if err != nil {
		return c.replyForError(userID, CommandSend, err)
	}

	return core.Reply{
		Text:     fmt.Sprintf("Send %s SOL to `%s`?", p.Amount, p.Recipient),
		Markdown: true,
		Buttons: []core.Button{
			{Label: "Confirm", Data: string(CommandConfirm)},
			{Label: "Cancel", Data: string(CommandCancel)},
		},
	}
}

func (c *Coordinator) handleConfirm(ctx context.Context, userID string) core.Reply {
	sig, err := c.transferz.Confirm(ctx, userID)
	if err != nil {
		return c.replyForError(userID, CommandConfirm, err)
	}

	return markdownReply(fmt.Sprintf("Transfer sent!\nSignature: `%s`", sig))
}

func (c *Coordinator) handleCancel(ctx context.Context, userID string) core.Reply {
	removed, err := c.transferz.Cancel(ctx, userID)
	if err != nil {
		return c.fatal(userID, CommandCancel, err)
	}

	if !removed {
		return textReply("Nothing to cancel.")
	}
	return textReply("Transfer cancelled.")
}

func (c *Coordinator) handleAirdrop(ctx context.Context, userID string) core.Reply {
	w, err := c.wallets.Find(ctx, userID)
	if err != nil {
		return c.fatal(userID, CommandAirdrop, err)
	}

	sig, err := c.ledger.RequestAirdrop(ctx, w.PublicKey, c.airdropAmount)
	if err != nil {
		return c.replyForError(userID, CommandAirdrop, err)
	}

	return markdownReply(fmt.Sprintf("Airdrop of %s SOL requested.\nSignature: `%s`", c.airdropAmount, sig))
}

func (c *Coordinator) handleHistory(ctx context.Context, userID string) core.Reply {
	w, err := c.wallets.Find(ctx, userID)
	if err != nil {
		return c.fatal(userID, CommandHistory, err)
	}

	records, err := c.ledger.ListTransfers(ctx, w.PublicKey, c.historyLimit)
	if err != nil {
		return c.replyForError(userID, CommandHistory, fmt.Errorf("%w: %v", core.ErrBalanceUnavailable, err))
	}

	if len(records) == 0 {
		return textReply("No transactions yet.")
	}

	var b strings.Builder
	b.WriteString("Recent transactions:\n")
	for _, r := range records {
		status := "ok"
		if r.Failed {
			status = "failed"
		}

		when := "pending"
		if r.BlockTime != nil {
			when = r.BlockTime.Format("Jan 2 15:04")
		}

		fmt.Fprintf(&b, "%s  %s  `%s`\n", when, status, r.Signature)
	}

	return markdownReply(b.String())
}

// replyForError renders a known operation outcome as user-facing text; only
// kinds outside the closed set fall through to fatal.
func (c *Coordinator) replyForError(userID string, cmd Command, err error) core.Reply {
	var (
		insufficient *core.InsufficientBalanceError
		submission   *core.SubmissionError
	)

	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return textReply("That amount doesn't look right. Use a positive number like 0.5.")
	case errors.Is(err, core.ErrInvalidAddress):
		return textReply("That doesn't look like a valid address.")
	case errors.Is(err, core.ErrAlreadyPending):
		return textReply("You already have a transfer waiting. Confirm or cancel it first.")
	case errors.Is(err, core.ErrRevealPending):
		return textReply("Your secret is already on screen. Wait for it to disappear.")
	case errors.Is(err, core.ErrNoPendingProposal):
		return textReply("There is no transfer to act on. It may have expired - send it again.")
	case errors.Is(err, core.ErrBalanceUnavailable):
		return textReply("Couldn't reach the network just now. Please try again.")
	case errors.Is(err, core.ErrWalletNotFound):
		return textReply("You don't have a wallet yet. Send /start to create one.")
	case errors.Is(err, core.ErrAirdropThrottled):
		return textReply("Airdrop limit reached for now. Try again later.")
	case errors.As(err, &insufficient):
		return textReply(fmt.Sprintf("Not enough funds: you have %s SOL.", insufficient.Observed))
	case errors.As(err, &submission):
		return textReply("The transfer was rejected by the network and has been discarded. Please send it again.")
	default:
		return c.fatal(userID, cmd, err)
	}
}

func (c *Coordinator) fatal(userID string, cmd Command, err error) core.Reply {
	c.logger.Error("command failed", "user", userID, "command", cmd, "err", err)
	return textReply("Something went wrong on our side. Please try again later.")
}

func textReply(text string) core.Reply {
	return core.Reply{Text: text}
}

func markdownReply(text string) core.Reply {
	return core.Reply{Text: text, Markdown: true}
}
