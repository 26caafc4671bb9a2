package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var airdropOpt struct {
	amount string
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop <address>",
	Short: "request a devnet airdrop for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(airdropOpt.amount)
		if err != nil {
			return err
		}

		sig, err := getLedger().RequestAirdrop(cmd.Context(), key, amount)
		if err != nil {
			return err
		}

		return printJson(cmd, map[string]string{"signature": sig.String()})
	},
}

func init() {
	rootCmd.AddCommand(airdropCmd)

	airdropCmd.Flags().StringVar(&airdropOpt.amount, "amount", "1", "amount in SOL")
}
