package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tipdao/chat-wallet/core"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLamportsToSOL(t *testing.T) {
	tests := []struct {
		lamports uint64
		want     string
	}{
		{0, "0"},
		{1, "0.000000001"},
		{5000, "0.000005"},
		{1_000_000_000, "1"},
		{1_500_000_000, "1.5"},
	}

	for _, tt := range tests {
		if got := lamportsToSOL(tt.lamports); !got.Equal(dec(tt.want)) {
			t.Errorf("lamportsToSOL(%d) = %s, want %s", tt.lamports, got, tt.want)
		}
	}
}

func TestSolToLamports(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    uint64
		wantErr bool
	}{
		{"one sol", "1", 1_000_000_000, false},
		{"fraction", "0.5", 500_000_000, false},
		{"smallest unit", "0.000000001", 1, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"below one lamport", "0.0000000001", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := solToLamports(dec(tt.amount))
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidAmount) {
					t.Fatalf("solToLamports(%s) err = %v, want ErrInvalidAmount", tt.amount, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("solToLamports(%s) = %v", tt.amount, err)
			}
			if got != tt.want {
				t.Errorf("solToLamports(%s) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}
