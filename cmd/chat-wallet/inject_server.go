package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/viper"

	"github.com/tipdao/chat-wallet/handler/api"
	"github.com/tipdao/chat-wallet/handler/bot"
	"github.com/tipdao/chat-wallet/handler/hc"
)

var serverSet = wire.NewSet(
	provideBotConfig,
	bot.New,
	api.New,
	provideServer,
)

func provideBotConfig(v *viper.Viper) bot.Config {
	v.SetDefault("bot.airdrop_amount", "1")
	v.SetDefault("bot.history_limit", 10)

	return bot.Config{
		AirdropAmount: v.GetString("bot.airdrop_amount"),
		HistoryLimit:  v.GetInt("bot.history_limit"),
	}
}

func provideServer(apiHandler *api.Server) *http.Server {
	m := chi.NewMux()
	m.Use(middleware.RealIP)
	m.Use(middleware.Logger)
	m.Use(middleware.Recoverer)
	m.Use(cors.AllowAll().Handler)

	m.Mount("/api", apiHandler.Handler())
	m.Mount("/hc", hc.Handler(version))
	m.Mount("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", opt.port),
		Handler: m,
	}
}
