package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/tipdao/chat-wallet/core"
	"github.com/zyedidia/generic/cache"
	"golang.org/x/sync/singleflight"
)

// solDecimals converts between SOL and lamports.
const solDecimals = 9

type Config struct {
	Endpoint        string        `valid:"url,required"`
	AirdropCooldown time.Duration `valid:"required"`
}

func New(logger *slog.Logger, cfg Config) core.LedgerService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &service{
		client:   rpc.New(cfg.Endpoint),
		airdrops: cache.New[string, time.Time](256),
		logger:   logger.With("service", "ledger"),
		cfg:      cfg,
	}
}

type service struct {
	client *rpc.Client
	sf     singleflight.Group

	// airdrops remembers the last faucet hit per account; the devnet
	// faucet rate-limits hard and the error it returns is unhelpful.
	airdrops *cache.Cache[string, time.Time]
	mux      sync.Mutex

	logger *slog.Logger
	cfg    Config
}

func lamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Shift(-solDecimals)
}

func solToLamports(amount decimal.Decimal) (uint64, error) {
	lamports := amount.Shift(solDecimals)
	if !lamports.IsPositive() || !lamports.IsInteger() {
		return 0, core.ErrInvalidAmount
	}

	return uint64(lamports.IntPart()), nil
}

// GetBalance always hits the node; concurrent lookups for the same account
// are collapsed into one RPC without introducing any staleness window
// beyond their own overlap.
func (s *service) GetBalance(ctx context.Context, key solana.PublicKey) (*core.Balance, error) {
	v, err, _ := s.sf.Do(key.String(), func() (any, error) {
		out, err := s.client.GetBalance(ctx, key, rpc.CommitmentConfirmed)
		if err != nil {
			return nil, fmt.Errorf("get balance: %w", err)
		}

		return &core.Balance{
			Amount:   lamportsToSOL(out.Value),
			Lamports: out.Value,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Balance), nil
}

func (s *service) ValidateAddress(address string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("parse address: %w", err)
	}

	return key, nil
}

func (s *service) Submit(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, amount decimal.Decimal) (solana.Signature, error) {
	lamports, err := solToLamports(amount)
	if err != nil {
		return solana.Signature{}, err
	}

	recent, err := s.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("get latest blockhash: %w", err)
	}

	payer := from.PublicKey()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, payer, to).Build(),
		},
		recent.Value.Blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if payer.Equals(key) {
			return &from
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}

	s.logger.Info("transaction sent", "signature", sig, "to", to, "lamports", lamports)
	return sig, nil
}

func (s *service) RequestAirdrop(ctx context.Context, key solana.PublicKey, amount decimal.Decimal) (solana.Signature, error) {
	lamports, err := solToLamports(amount)
	if err != nil {
		return solana.Signature{}, err
	}

	s.mux.Lock()
	if last, ok := s.airdrops.Get(key.String()); ok && time.Since(last) < s.cfg.AirdropCooldown {
		s.mux.Unlock()
		return solana.Signature{}, core.ErrAirdropThrottled
	}
	s.mux.Unlock()

	sig, err := s.client.RequestAirdrop(ctx, key, lamports, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("request airdrop: %w", err)
	}

	s.mux.Lock()
	s.airdrops.Put(key.String(), time.Now())
	s.mux.Unlock()

	s.logger.Info("airdrop requested", "account", key, "lamports", lamports, "signature", sig)
	return sig, nil
}

func (s *service) ListTransfers(ctx context.Context, key solana.PublicKey, limit int) ([]*core.TransferRecord, error) {
	sigs, err := s.client.GetSignaturesForAddressWithOpts(ctx, key, &rpc.GetSignaturesForAddressOpts{
		Limit: &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("get signatures: %w", err)
	}

	records := make([]*core.TransferRecord, 0, len(sigs))
	for _, item := range sigs {
		record := &core.TransferRecord{
			Signature: item.Signature,
			Slot:      uint64(item.Slot),
			Failed:    item.Err != nil,
		}

		if item.BlockTime != nil {
			t := item.BlockTime.Time()
			record.BlockTime = &t
		}
		if item.Memo != nil {
			record.Memo = *item.Memo
		}

		records = append(records, record)
	}

	return records, nil
}
