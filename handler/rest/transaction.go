package rest

import (
	"net/http"
	"time"

	"redbank/core"
	"redbank/handler/param"
	"redbank/handler/render"
)

// response ledger transactions after an offset
func transactionsHandler(transactionStr core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Offset string `json:"offset"`
			Limit  int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		offsetTime, err := time.Parse(time.RFC3339Nano, params.Offset)
		if err != nil {
			offsetTime = time.Time{}
		}

		transactions, err := transactionStr.List(ctx, offsetTime, pageSize(params.Limit))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
