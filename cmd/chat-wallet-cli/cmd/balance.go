package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "look up the balance of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return err
		}

		balance, err := getLedger().GetBalance(cmd.Context(), key)
		if err != nil {
			return err
		}

		return printJson(cmd, balance)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
