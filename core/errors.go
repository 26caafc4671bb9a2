package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Operation outcomes are a closed set matched with errors.Is / errors.As,
// never by inspecting message text.
var (
	ErrAlreadyPending     = errors.New("a transfer proposal is already pending")
	ErrRevealPending      = errors.New("a secret reveal is already pending")
	ErrNoPendingProposal  = errors.New("no pending transfer proposal")
	ErrInvalidAddress     = errors.New("invalid recipient address")
	ErrInvalidAmount      = errors.New("invalid transfer amount")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrBalanceUnavailable = errors.New("balance unavailable")
	ErrAirdropThrottled   = errors.New("airdrop throttled")
)

// InsufficientBalanceError carries the balance observed at check time so the
// user can be told what they actually have.
type InsufficientBalanceError struct {
	Observed decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: %s available", e.Observed)
}

// SubmissionError wraps an opaque ledger-submission failure.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Cause)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
