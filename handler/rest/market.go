package rest

import (
	"context"
	"net/http"
	"time"

	"redbank/core"
	"redbank/handler/param"
	"redbank/handler/render"
	"redbank/handler/views"
	"redbank/pkg/number"
	"redbank/pkg/redbank"

	"github.com/shopspring/decimal"
)

func allMarketsHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, err := marketStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, getMarketView(ctx, m, marketSrv))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Denom string `json:"denom"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		market, err := marketStr.Find(ctx, params.Denom)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if market.ID == 0 {
			render.BadRequest(w, core.ErrAssetNotInitialized.Errorf("no market for %s", params.Denom))
			return
		}

		render.JSON(w, getMarketView(ctx, market, marketSrv))
	}
}

func getMarketView(ctx context.Context, market *core.Market, marketSrv core.IMarketService) *views.Market {
	if virtual, err := marketSrv.VirtualMarket(ctx, market, time.Now()); err == nil {
		market = virtual
	}

	utilization, err := redbank.Utilization(market)
	if err != nil {
		utilization = decimal.Zero
	}

	totalCollateral, err := number.DescaleLiquidity(market.CollateralTotalScaled, market.LiquidityIndex)
	if err != nil {
		totalCollateral = decimal.Zero
	}

	totalDebt, err := number.DescaleDebt(market.DebtTotalScaled, market.BorrowIndex)
	if err != nil {
		totalDebt = decimal.Zero
	}

	return &views.Market{
		Market:          *market,
		Utilization:     utilization,
		TotalCollateral: totalCollateral,
		TotalDebt:       totalDebt,
	}
}

// scaledAmountHandler converts an underlying amount to scaled units at the
// current virtual index. Debt scales up, liquidity scales down.
func scaledAmountHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return amountHandler(marketStr, marketSrv, func(amount decimal.Decimal, market *core.Market, debt bool) (decimal.Decimal, error) {
		if debt {
			return number.ScaleDebt(amount, market.BorrowIndex)
		}

		return number.ScaleLiquidity(amount, market.LiquidityIndex)
	})
}

func underlyingAmountHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return amountHandler(marketStr, marketSrv, func(amount decimal.Decimal, market *core.Market, debt bool) (decimal.Decimal, error) {
		if debt {
			return number.DescaleDebt(amount, market.BorrowIndex)
		}

		return number.DescaleLiquidity(amount, market.LiquidityIndex)
	})
}

func amountHandler(marketStr core.IMarketStore, marketSrv core.IMarketService, convert func(amount decimal.Decimal, market *core.Market, debt bool) (decimal.Decimal, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Denom  string          `json:"denom"`
			Amount decimal.Decimal `json:"amount"`
			Debt   bool            `json:"debt"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		market, err := marketStr.Find(ctx, params.Denom)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if market.ID == 0 {
			render.BadRequest(w, core.ErrAssetNotInitialized.Errorf("no market for %s", params.Denom))
			return
		}

		if virtual, err := marketSrv.VirtualMarket(ctx, market, time.Now()); err == nil {
			market = virtual
		}

		amount, err := convert(params.Amount, market, params.Debt)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"denom":  params.Denom,
			"amount": amount,
		})
	}
}
