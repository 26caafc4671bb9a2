package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chatwallet",
	Name:      "commands_total",
	Help:      "Inbound chat commands by kind.",
}, []string{"command"})
