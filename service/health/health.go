package health

import (
	"context"
	"time"

	"redbank/core"
	"redbank/pkg/number"
	"redbank/pkg/redbank"

	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)

type service struct {
	marketStore     core.IMarketStore
	collateralStore core.ICollateralStore
	debtStore       core.IDebtStore
	oracles         core.IOracleService
	params          core.IParamsService
}

// New new health service
func New(
	marketStore core.IMarketStore,
	collateralStore core.ICollateralStore,
	debtStore core.IDebtStore,
	oracles core.IOracleService,
	params core.IParamsService,
) core.IHealthService {
	return &service{
		marketStore:     marketStore,
		collateralStore: collateralStore,
		debtStore:       debtStore,
		oracles:         oracles,
		params:          params,
	}
}

// Position loads the (user, account) ledger at virtual indices. Disabled
// collateral rows and uncollateralized debt are invisible to health.
func (s *service) Position(ctx context.Context, userID, accountID string, kind core.PriceKind) (*core.Position, core.DenomsData, error) {
	now := time.Now()

	markets, err := s.marketStore.AllAsMap(ctx)
	if err != nil {
		return nil, nil, err
	}

	position := &core.Position{
		UserID:    userID,
		AccountID: accountID,
	}

	denomSet := map[string]bool{}

	collaterals, err := s.collateralStore.FindByUser(ctx, userID, accountID)
	if err != nil {
		return nil, nil, err
	}

	for _, collateral := range collaterals {
		if !collateral.Enabled {
			continue
		}

		market, ok := markets[collateral.Denom]
		if !ok {
			return nil, nil, core.ErrAssetNotInitialized.Errorf("no market for %s", collateral.Denom)
		}

		liquidityIndex, _ := redbank.VirtualIndices(market, now)
		amount, err := number.DescaleLiquidity(collateral.AmountScaled, liquidityIndex)
		if err != nil {
			return nil, nil, err
		}

		position.Deposits = append(position.Deposits, core.Coin{Denom: collateral.Denom, Amount: amount})
		denomSet[collateral.Denom] = true
	}

	debts, err := s.debtStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	for _, debt := range debts {
		if debt.Uncollateralized {
			continue
		}

		market, ok := markets[debt.Denom]
		if !ok {
			return nil, nil, core.ErrAssetNotInitialized.Errorf("no market for %s", debt.Denom)
		}

		_, borrowIndex := redbank.VirtualIndices(market, now)
		amount, err := number.DescaleDebt(debt.AmountScaled, borrowIndex)
		if err != nil {
			return nil, nil, err
		}

		position.Debts = append(position.Debts, core.Coin{Denom: debt.Denom, Amount: amount})
		denomSet[debt.Denom] = true
	}

	denoms := core.DenomsData{}
	for denom := range denomSet {
		price, err := s.oracles.Price(ctx, denom, kind)
		if err != nil {
			return nil, nil, err
		}

		params, err := s.params.Asset(ctx, denom)
		if err != nil {
			return nil, nil, err
		}

		denoms[denom] = core.DenomData{Price: price, Params: params}
	}

	return position, denoms, nil
}

// Compute evaluates one snapshot. Deposits, lends and staked LPs are
// collateral valued at their denom's price; vault shares at the vault's unit
// value, while unlocking lots are valued and weighted as the base coin
// itself; perps fold their pre-valued collateral and debt legs in directly.
//
// A denom whitelisted for LTV but delisted loses its max-LTV weight while
// keeping its liquidation threshold, so delisting never flips an account
// straight into liquidation.
func (s *service) Compute(ctx context.Context, position *core.Position, denoms core.DenomsData, vaults core.VaultsData, delisted map[string]bool) (*core.Health, error) {
	health := &core.Health{
		TotalCollateralValue:                   decimal.Zero,
		TotalDebtValue:                         decimal.Zero,
		MaxLTVAdjustedCollateral:               decimal.Zero,
		LiquidationThresholdAdjustedCollateral: decimal.Zero,
	}

	// a zero price is a real quote, the value just collapses; only a missing
	// entry is an error
	addCollateral := func(denom string, amount decimal.Decimal) error {
		data, ok := denoms[denom]
		if !ok {
			return core.ErrNoPrice.Errorf("no price for %s", denom)
		}

		value := amount.Mul(data.Price)
		health.TotalCollateralValue = health.TotalCollateralValue.Add(value)

		if data.Params.WhitelistedForLTV && !delisted[denom] {
			health.MaxLTVAdjustedCollateral = health.MaxLTVAdjustedCollateral.Add(value.Mul(data.Params.MaxLTV))
		}

		if data.Params.WhitelistedForLiquidation {
			health.LiquidationThresholdAdjustedCollateral = health.LiquidationThresholdAdjustedCollateral.Add(value.Mul(data.Params.LiquidationThreshold))
		}

		return nil
	}

	for _, coin := range position.Deposits {
		if err := addCollateral(coin.Denom, coin.Amount); err != nil {
			return nil, err
		}
	}

	for _, coin := range position.Lends {
		if err := addCollateral(coin.Denom, coin.Amount); err != nil {
			return nil, err
		}
	}

	for _, coin := range position.StakedLPs {
		if err := addCollateral(coin.Denom, coin.Amount); err != nil {
			return nil, err
		}
	}

	for _, vault := range position.Vaults {
		data, ok := vaults[vault.Vault]
		if !ok {
			return nil, core.ErrNoPrice.Errorf("no data for vault %s", vault.Vault)
		}

		// unlocking lots are already base coins; they carry the base
		// denom's params and delisting, not the vault's
		for _, unlocking := range vault.Unlocking {
			if err := addCollateral(unlocking.Coin.Denom, unlocking.Coin.Amount); err != nil {
				return nil, err
			}
		}

		value := vault.Units.Mul(data.VaultCoinValue)
		health.TotalCollateralValue = health.TotalCollateralValue.Add(value)

		if data.Whitelisted && !delisted[vault.Vault] {
			health.MaxLTVAdjustedCollateral = health.MaxLTVAdjustedCollateral.Add(value.Mul(data.MaxLTV))
		}

		health.LiquidationThresholdAdjustedCollateral = health.LiquidationThresholdAdjustedCollateral.Add(value.Mul(data.LiquidationThreshold))
	}

	for _, perp := range position.Perps {
		data, ok := denoms[perp.Denom]
		if !ok {
			return nil, core.ErrNoPrice.Errorf("no data for %s", perp.Denom)
		}

		health.TotalCollateralValue = health.TotalCollateralValue.Add(perp.CollateralValue)
		health.TotalDebtValue = health.TotalDebtValue.Add(perp.DebtValue)

		if data.Params.WhitelistedForLTV && !delisted[perp.Denom] {
			health.MaxLTVAdjustedCollateral = health.MaxLTVAdjustedCollateral.Add(perp.CollateralValue.Mul(data.Params.MaxLTV))
		}

		if data.Params.WhitelistedForLiquidation {
			health.LiquidationThresholdAdjustedCollateral = health.LiquidationThresholdAdjustedCollateral.Add(perp.CollateralValue.Mul(data.Params.LiquidationThreshold))
		}
	}

	for _, coin := range position.Debts {
		data, ok := denoms[coin.Denom]
		if !ok {
			return nil, core.ErrNoPrice.Errorf("no price for %s", coin.Denom)
		}

		health.TotalDebtValue = health.TotalDebtValue.Add(coin.Amount.Mul(data.Price))
	}

	if health.TotalDebtValue.IsPositive() {
		maxLTVFactor, err := number.FromRatio(health.MaxLTVAdjustedCollateral, health.TotalDebtValue)
		if err != nil {
			return nil, err
		}

		liquidationFactor, err := number.FromRatio(health.LiquidationThresholdAdjustedCollateral, health.TotalDebtValue)
		if err != nil {
			return nil, err
		}

		health.MaxLTVHealthFactor = &maxLTVFactor
		health.LiquidationHealthFactor = &liquidationFactor
		health.AboveMaxLTV = maxLTVFactor.LessThan(one)
		health.Liquidatable = liquidationFactor.LessThan(one)
	}

	return health, nil
}
