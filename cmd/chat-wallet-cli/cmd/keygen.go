package cmd

import (
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "generate a keypair with its recovery phrase",
	RunE: func(cmd *cobra.Command, args []string) error {
		entropy, err := bip39.NewEntropy(128)
		if err != nil {
			return fmt.Errorf("generate entropy: %w", err)
		}

		mnemonic, err := bip39.NewMnemonic(entropy)
		if err != nil {
			return fmt.Errorf("generate mnemonic: %w", err)
		}

		seed := bip39.NewSeed(mnemonic, "")
		key := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]))

		return printJson(cmd, map[string]string{
			"address":     key.PublicKey().String(),
			"private_key": key.String(),
			"mnemonic":    mnemonic,
		})
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
