package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tipdao/chat-wallet/core"
)

var sweptTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "chatwallet",
	Name:      "proposals_swept_total",
	Help:      "Transfer proposals removed by the expiry sweep.",
})

type Config struct {
	Interval time.Duration `valid:"required"`
	MaxAge   time.Duration `valid:"required"`
}

func New(transferz core.TransferService, logger *slog.Logger, cfg Config) *Sweeper {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &Sweeper{
		transferz: transferz,
		logger:    logger.With("worker", "sweeper"),
		cfg:       cfg,
	}
}

type Sweeper struct {
	transferz core.TransferService
	logger    *slog.Logger
	cfg       Config
}

func (w *Sweeper) Run(ctx context.Context) error {
	w.logger.Info("sweeper start", "interval", w.cfg.Interval, "max_age", w.cfg.MaxAge)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.Interval):
			_ = w.run(ctx)
		}
	}
}

func (w *Sweeper) run(ctx context.Context) error {
	n, err := w.transferz.SweepExpired(ctx, w.cfg.MaxAge)
	if err != nil {
		w.logger.Error("transferz.SweepExpired", "err", err)
		return err
	}

	if n > 0 {
		w.logger.Info("expired proposals swept", "count", n)
		sweptTotal.Add(float64(n))
	}

	return nil
}
