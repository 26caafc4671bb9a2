package main

import (
	"time"

	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/tipdao/chat-wallet/service/ledger"
	"github.com/tipdao/chat-wallet/service/reveal"
	"github.com/tipdao/chat-wallet/service/transfer"
	walletsvc "github.com/tipdao/chat-wallet/service/wallet"
	"github.com/tipdao/chat-wallet/transport/webhook"
)

var serviceSet = wire.NewSet(
	provideLedgerConfig,
	ledger.New,
	walletsvc.New,
	provideRevealConfig,
	reveal.New,
	transfer.New,
	provideWebhookConfig,
	webhook.New,
)

func provideLedgerConfig(v *viper.Viper) ledger.Config {
	v.SetDefault("ledger.endpoint", "https://api.devnet.solana.com")
	v.SetDefault("ledger.airdrop_cooldown", time.Hour)

	return ledger.Config{
		Endpoint:        v.GetString("ledger.endpoint"),
		AirdropCooldown: v.GetDuration("ledger.airdrop_cooldown"),
	}
}

func provideRevealConfig(v *viper.Viper) reveal.Config {
	v.SetDefault("reveal.window", time.Minute)

	return reveal.Config{
		Window: v.GetDuration("reveal.window"),
	}
}

func provideWebhookConfig(v *viper.Viper) webhook.Config {
	return webhook.Config{
		CallbackURL: v.GetString("gateway.callback_url"),
	}
}
