package rest

import (
	"net/http"

	"redbank/core"
	"redbank/handler/param"
	"redbank/handler/render"
	"redbank/handler/views"
)

const maxPageSize = 500

func collateralsHandler(collateralStr core.ICollateralStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User    string `json:"user"`
			Account string `json:"account"`
			From    string `json:"from"`
			Limit   int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		collaterals, err := collateralStr.List(ctx, params.User, params.Account, params.From, pageSize(params.Limit))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, collaterals)
	}
}

func debtsHandler(debtStr core.IDebtStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User  string `json:"user"`
			From  string `json:"from"`
			Limit int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		debts, err := debtStr.List(ctx, params.User, params.From, pageSize(params.Limit))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, debts)
	}
}

func limitsHandler(limitStr core.ILimitStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User string `json:"user"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limits, err := limitStr.FindByUser(ctx, params.User)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, limits)
	}
}

func positionHandler(healthSrv core.IHealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User    string `json:"user"`
			Account string `json:"account"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, denoms, err := healthSrv.Position(ctx, params.User, params.Account, core.PriceKindDefault)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		health, err := healthSrv.Compute(ctx, position, denoms, nil, nil)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.Position{
			Position: *position,
			Health:   health,
		})
	}
}

func pageSize(limit int) int {
	if limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}

	return limit
}
