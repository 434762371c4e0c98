package rest

import (
	"errors"
	"net/http"

	"redbank/core"
	"redbank/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	marketStore core.IMarketStore,
	collateralStore core.ICollateralStore,
	debtStore core.IDebtStore,
	limitStore core.ILimitStore,
	transactionStore core.ITransactionStore,
	marketService core.IMarketService,
	healthService core.IHealthService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets/all", allMarketsHandler(marketStore, marketService))
	router.Get("/market", marketHandler(marketStore, marketService))
	router.Get("/scaled-amount", scaledAmountHandler(marketStore, marketService))
	router.Get("/underlying-amount", underlyingAmountHandler(marketStore, marketService))
	router.Get("/user/collaterals", collateralsHandler(collateralStore))
	router.Get("/user/debts", debtsHandler(debtStore))
	router.Get("/user/limits", limitsHandler(limitStore))
	router.Get("/user/position", positionHandler(healthService))
	router.Get("/transactions", transactionsHandler(transactionStore))

	return router
}
