package interest

import (
	"context"
	"time"

	"redbank/core"
	"redbank/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
)

const checkpointKey = "interest_checkpoint"

// Worker fast-forwards every market's indices on a schedule so quotes stay
// fresh between user actions. Action handlers accrue on their own; this only
// bounds how stale an idle market can get.
type Worker struct {
	worker.TickWorker
	db       *db.DB
	markets  core.IMarketStore
	marketz  core.IMarketService
	property property.Store
	interval time.Duration
}

// New new interest worker
func New(
	database *db.DB,
	markets core.IMarketStore,
	marketz core.IMarketService,
	propertyStore property.Store,
	interval time.Duration,
) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Worker{
		db:       database,
		markets:  markets,
		marketz:  marketz,
		property: propertyStore,
		interval: interval,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	now := time.Now()
	if last := v.Time(); now.Sub(last) < w.interval {
		return nil
	}

	markets, err := w.markets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	for _, market := range markets {
		if err := w.accrue(ctx, market.Denom, now); err != nil {
			log.WithError(err).Errorln("accrue", market.Denom)
			return err
		}
	}

	if err := w.property.Save(ctx, checkpointKey, now); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

func (w *Worker) accrue(ctx context.Context, denom string, now time.Time) error {
	return w.db.Tx(func(tx *db.DB) error {
		// re-read inside the tx, a handler may have moved the market already
		market, err := w.markets.Find(ctx, denom)
		if err != nil {
			return err
		}

		if market.ID == 0 {
			return nil
		}

		if err := w.marketz.Accrue(ctx, tx, market, now); err != nil {
			return err
		}

		if err := w.marketz.Reprice(ctx, market); err != nil {
			return err
		}

		return w.markets.Update(ctx, tx, market)
	})
}
