package priceoracle

import (
	"context"
	"fmt"
	"time"

	"redbank/core"
	"redbank/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Worker polls the external price feed and stores the latest quote for every
// listed denom. Denoms without a market are skipped so the feed cannot grow
// the price table unbounded.
type Worker struct {
	worker.TickWorker
	db      *db.DB
	markets core.IMarketStore
	prices  core.IPriceStore
	client  *resty.Client
	feedURL string
}

type feedItem struct {
	Denom string          `json:"denom"`
	Price decimal.Decimal `json:"price"`
}

type feedResponse struct {
	Prices []feedItem `json:"prices"`
}

// New new price oracle worker
func New(
	database *db.DB,
	markets core.IMarketStore,
	prices core.IPriceStore,
	cfg core.OracleConfig,
) *Worker {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Worker{
		db:      database,
		markets: markets,
		prices:  prices,
		client:  client,
		feedURL: cfg.FeedURL,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	markets, err := w.markets.AllAsMap(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.AllAsMap")
		return err
	}

	if len(markets) == 0 {
		return nil
	}

	var body feedResponse
	resp, err := w.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(w.feedURL)
	if err != nil {
		log.WithError(err).Errorln("feed.Get")
		return err
	}

	if !resp.IsSuccess() {
		err := fmt.Errorf("feed responded with status %d", resp.StatusCode())
		log.WithError(err).Errorln("feed.Get")
		return err
	}

	for _, item := range body.Prices {
		if _, ok := markets[item.Denom]; !ok {
			continue
		}

		if item.Price.IsNegative() {
			log.Errorln("feed returned a negative price for", item.Denom)
			continue
		}

		if err := w.savePrice(ctx, item); err != nil {
			log.WithError(err).Errorln("prices.Save", item.Denom)
			return err
		}
	}

	return nil
}

func (w *Worker) savePrice(ctx context.Context, item feedItem) error {
	return w.db.Tx(func(tx *db.DB) error {
		return w.prices.Save(ctx, tx, &core.Price{
			Denom:     item.Denom,
			Price:     item.Price,
			UpdatedAt: time.Now(),
		})
	})
}
