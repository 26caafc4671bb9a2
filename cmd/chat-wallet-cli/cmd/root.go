package cmd

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/service/ledger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-wallet-cli",
	Short: "ops helpers for the chat-wallet service",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("endpoint", "l", "https://api.devnet.solana.com", "solana rpc endpoint")
	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

func getLedger() core.LedgerService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return ledger.New(logger, ledger.Config{
		Endpoint:        viper.GetString("endpoint"),
		AirdropCooldown: time.Second,
	})
}

func printJson(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(b))
	return nil
}
