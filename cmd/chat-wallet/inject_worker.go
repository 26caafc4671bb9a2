package main

import (
	"time"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/tipdao/chat-wallet/worker/sweeper"
)

var workerSet = wire.NewSet(
	provideSweeperConfig,
	sweeper.New,
)

func provideSweeperConfig(v *viper.Viper) sweeper.Config {
	v.SetDefault("sweeper.interval", time.Minute)
	v.SetDefault("sweeper.max_age", 5*time.Minute)

	return sweeper.Config{
		Interval: v.GetDuration("sweeper.interval"),
		MaxAge:   v.GetDuration("sweeper.max_age"),
	}
}
