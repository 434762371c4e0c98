package cashier

import (
	"context"
	"errors"

	"redbank/core"
	"redbank/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Config cashier settings
type Config struct {
	Batch    int   `json:"batch" valid:"required"`
	Capacity int64 `json:"capacity" valid:"required"`
}

// Cashier drains the outgoing transfer queue. Action handlers only enqueue
// transfers; nothing leaves the pool until the cashier hands the row to the
// wallet service and marks it handled.
type Cashier struct {
	worker.TickWorker
	db        *db.DB
	transfers core.ITransferStore
	walletz   core.IWalletService
	cfg       Config
}

// New new cashier
func New(
	database *db.DB,
	transfers core.ITransferStore,
	walletz core.IWalletService,
	cfg Config,
) *Cashier {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	return &Cashier{
		db:        database,
		transfers: transfers,
		walletz:   walletz,
		cfg:       cfg,
	}
}

// Run run worker
func (w *Cashier) Run(ctx context.Context) error {
	f := w.sync
	if w.cfg.Capacity > 1 {
		f = w.parallel(w.cfg.Capacity)
	}

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx, f)
	})
}

func (w *Cashier) onWork(ctx context.Context, f func(context.Context, []*core.Transfer) error) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")

	transfers, err := w.transfers.Top(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("transfers.Top")
		return err
	}

	if len(transfers) == 0 {
		return errors.New("EOF")
	}

	return f(ctx, transfers)
}

func (w *Cashier) sync(ctx context.Context, transfers []*core.Transfer) error {
	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			return err
		}
	}

	return nil
}

func (w *Cashier) parallel(capacity int64) func(ctx context.Context, transfers []*core.Transfer) error {
	sem := semaphore.NewWeighted(capacity)

	return func(ctx context.Context, transfers []*core.Transfer) error {
		g := errgroup.Group{}

		for idx := range transfers {
			transfer := transfers[idx]

			if err := sem.Acquire(ctx, 1); err != nil {
				return g.Wait()
			}

			g.Go(func() error {
				defer sem.Release(1)
				return w.handleTransfer(ctx, transfer)
			})
		}

		return g.Wait()
	}
}

func (w *Cashier) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx)

	if err := w.walletz.Transfer(ctx, transfer); err != nil {
		log.WithError(err).Errorln("walletz.Transfer")
		return err
	}

	if err := w.transfers.Handled(ctx, w.db, transfer.ID); err != nil {
		log.WithError(err).Errorln("transfers.Handled")
		return err
	}

	return nil
}
