package health

import (
	"context"
	"testing"

	"redbank/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func params(maxLTV, threshold string) core.AssetParams {
	return core.AssetParams{
		MaxLTV:                    dec(maxLTV),
		LiquidationThreshold:      dec(threshold),
		WhitelistedForLTV:         true,
		WhitelistedForLiquidation: true,
	}
}

func computer() core.IHealthService {
	return New(nil, nil, nil, nil, nil)
}

func TestComputeCollateralOnly(t *testing.T) {
	position := &core.Position{
		UserID:   "alice",
		Deposits: []core.Coin{{Denom: "uosmo", Amount: dec("300")}},
	}
	denoms := core.DenomsData{
		"uosmo": {Price: dec("0.25"), Params: params("0.5", "0.55")},
	}

	health, err := computer().Compute(context.Background(), position, denoms, nil, nil)
	require.Nil(t, err)

	assert.Equal(t, "75", health.TotalCollateralValue.String())
	assert.True(t, health.TotalDebtValue.IsZero())
	assert.Nil(t, health.MaxLTVHealthFactor)
	assert.Nil(t, health.LiquidationHealthFactor)
	assert.False(t, health.AboveMaxLTV)
	assert.False(t, health.Liquidatable)
}

func TestComputeZeroPriceCollapsesValues(t *testing.T) {
	// the rows survive a zero quote; only their value vanishes
	position := &core.Position{
		UserID:   "bob",
		Deposits: []core.Coin{{Denom: "uluna", Amount: dec("12")}},
		Debts:    []core.Coin{{Denom: "uluna", Amount: dec("3")}},
	}
	denoms := core.DenomsData{
		"uluna": {Price: decimal.Zero, Params: params("0.6", "0.65")},
	}

	health, err := computer().Compute(context.Background(), position, denoms, nil, nil)
	require.Nil(t, err)

	assert.True(t, health.TotalCollateralValue.IsZero())
	assert.True(t, health.TotalDebtValue.IsZero())
	assert.Nil(t, health.MaxLTVHealthFactor)
	assert.Nil(t, health.LiquidationHealthFactor)
	assert.False(t, health.AboveMaxLTV)
	assert.False(t, health.Liquidatable)
}

func TestComputePriceMoveCrossesThresholds(t *testing.T) {
	position := &core.Position{
		UserID:   "carol",
		Deposits: []core.Coin{{Denom: "uosmo", Amount: dec("300")}},
		Debts:    []core.Coin{{Denom: "uatom", Amount: dec("16")}},
	}
	denoms := core.DenomsData{
		"uosmo": {Price: dec("2.3654"), Params: params("0.5", "0.55")},
		"uatom": {Price: dec("10.2"), Params: params("0.7", "0.75")},
	}

	// collateral value 709.62, ltv-adjusted 354.81, lt-adjusted 390.291
	health, err := computer().Compute(context.Background(), position, denoms, nil, nil)
	require.Nil(t, err)
	require.NotNil(t, health.MaxLTVHealthFactor)
	assert.False(t, health.AboveMaxLTV)
	assert.False(t, health.Liquidatable)

	// debt value 384: between the two adjusted collateral values
	denoms["uatom"] = core.DenomData{Price: dec("24"), Params: params("0.7", "0.75")}
	health, err = computer().Compute(context.Background(), position, denoms, nil, nil)
	require.Nil(t, err)
	assert.True(t, health.AboveMaxLTV)
	assert.False(t, health.Liquidatable)

	// debt value 560: beyond both
	denoms["uatom"] = core.DenomData{Price: dec("35"), Params: params("0.7", "0.75")}
	health, err = computer().Compute(context.Background(), position, denoms, nil, nil)
	require.Nil(t, err)
	assert.True(t, health.AboveMaxLTV)
	assert.True(t, health.Liquidatable)
}

func TestComputeDelistingDropsOnlyMaxLTV(t *testing.T) {
	position := &core.Position{
		UserID:   "dave",
		Deposits: []core.Coin{{Denom: "uosmo", Amount: dec("300")}},
		Debts:    []core.Coin{{Denom: "uatom", Amount: dec("10")}},
	}
	denoms := core.DenomsData{
		"uosmo": {Price: dec("2.3654"), Params: params("0.5", "0.55")},
		"uatom": {Price: dec("10.2"), Params: params("0.7", "0.75")},
	}

	before, err := computer().Compute(context.Background(), position, denoms, nil, nil)
	require.Nil(t, err)
	require.False(t, before.AboveMaxLTV)
	require.False(t, before.Liquidatable)

	after, err := computer().Compute(context.Background(), position, denoms, nil, map[string]bool{"uosmo": true})
	require.Nil(t, err)

	assert.Equal(t, before.TotalCollateralValue.String(), after.TotalCollateralValue.String())
	assert.Equal(t, before.LiquidationThresholdAdjustedCollateral.String(), after.LiquidationThresholdAdjustedCollateral.String())
	assert.Equal(t, before.LiquidationHealthFactor.String(), after.LiquidationHealthFactor.String())
	assert.Equal(t, before.Liquidatable, after.Liquidatable)

	assert.True(t, after.MaxLTVAdjustedCollateral.LessThan(before.MaxLTVAdjustedCollateral))
	assert.True(t, after.MaxLTVHealthFactor.LessThan(*before.MaxLTVHealthFactor))
	assert.True(t, after.AboveMaxLTV)
}

func TestComputeVaultsAndStakedLPs(t *testing.T) {
	position := &core.Position{
		UserID:    "erin",
		AccountID: "acct-1",
		Vaults: []core.VaultPosition{
			{
				Vault: "vault-1",
				State: core.VaultStateLocking,
				Units: dec("100"),
				Unlocking: []core.VaultUnlocking{
					{ID: 1, Coin: core.Coin{Denom: "uosmo", Amount: dec("40")}},
				},
			},
		},
		StakedLPs: []core.Coin{{Denom: "gamm/pool/1", Amount: dec("10")}},
		Debts:     []core.Coin{{Denom: "uatom", Amount: dec("5")}},
	}
	denoms := core.DenomsData{
		"uosmo":       {Price: dec("2"), Params: params("0.5", "0.55")},
		"uatom":       {Price: dec("10"), Params: params("0.7", "0.75")},
		"gamm/pool/1": {Price: dec("3"), Params: params("0.4", "0.45")},
	}
	vaults := core.VaultsData{
		"vault-1": {
			VaultCoinValue:       dec("1.5"),
			BaseCoinDenom:        "uosmo",
			MaxLTV:               dec("0.6"),
			LiquidationThreshold: dec("0.65"),
			Whitelisted:          true,
		},
	}

	health, err := computer().Compute(context.Background(), position, denoms, vaults, nil)
	require.Nil(t, err)

	// vault 100 x 1.5 + unlocking 40 x 2 = 230; lp 10 x 3 = 30
	assert.Equal(t, "260", health.TotalCollateralValue.String())
	assert.Equal(t, "50", health.TotalDebtValue.String())

	// shares 150 x 0.6, unlocking 80 x 0.5 (uosmo weight), lp 30 x 0.4
	assert.Equal(t, "142", health.MaxLTVAdjustedCollateral.String())
	// shares 150 x 0.65 + unlocking 80 x 0.55 + lp 30 x 0.45
	assert.Equal(t, "155", health.LiquidationThresholdAdjustedCollateral.String())

	assert.Equal(t, "2.84", health.MaxLTVHealthFactor.String())
	assert.False(t, health.AboveMaxLTV)
}

func TestComputeVaultUnlockingFollowsBaseDenom(t *testing.T) {
	position := &core.Position{
		UserID:    "erin",
		AccountID: "acct-1",
		Vaults: []core.VaultPosition{
			{
				Vault: "vault-1",
				State: core.VaultStateLocking,
				Units: decimal.Zero,
				Unlocking: []core.VaultUnlocking{
					{ID: 1, Coin: core.Coin{Denom: "uosmo", Amount: dec("40")}},
				},
			},
		},
		Debts: []core.Coin{{Denom: "uatom", Amount: dec("5")}},
	}
	denoms := core.DenomsData{
		"uosmo": {Price: dec("2"), Params: params("0.5", "0.55")},
		"uatom": {Price: dec("10"), Params: params("0.7", "0.75")},
	}
	vaults := core.VaultsData{
		"vault-1": {
			VaultCoinValue:       dec("1.5"),
			BaseCoinDenom:        "uosmo",
			MaxLTV:               dec("0.6"),
			LiquidationThreshold: dec("0.65"),
			Whitelisted:          true,
		},
	}

	// delisting the base denom drops the unlocking lot's max-LTV weight
	// even though the vault itself is still whitelisted
	delisted := map[string]bool{"uosmo": true}
	health, err := computer().Compute(context.Background(), position, denoms, vaults, delisted)
	require.Nil(t, err)

	assert.Equal(t, "80", health.TotalCollateralValue.String())
	assert.Equal(t, "0", health.MaxLTVAdjustedCollateral.String())
	// the liquidation threshold survives delisting, at the denom's weight
	assert.Equal(t, "44", health.LiquidationThresholdAdjustedCollateral.String())
	assert.True(t, health.AboveMaxLTV)
}

func TestComputePerpsFold(t *testing.T) {
	position := &core.Position{
		UserID:    "frank",
		AccountID: "acct-2",
		Deposits:  []core.Coin{{Denom: "uosmo", Amount: dec("100")}},
		Perps: []core.PerpPosition{
			{
				Denom:           "uatom",
				Size:            dec("2"),
				CollateralValue: dec("50"),
				DebtValue:       dec("30"),
			},
		},
	}
	denoms := core.DenomsData{
		"uosmo": {Price: dec("1"), Params: params("0.5", "0.55")},
		"uatom": {Price: dec("10"), Params: params("0.7", "0.75")},
	}

	health, err := computer().Compute(context.Background(), position, denoms, nil, nil)
	require.Nil(t, err)

	assert.Equal(t, "150", health.TotalCollateralValue.String())
	assert.Equal(t, "30", health.TotalDebtValue.String())

	// 100 x 0.5 + 50 x 0.7 = 85
	assert.Equal(t, "85", health.MaxLTVAdjustedCollateral.String())
	assert.False(t, health.AboveMaxLTV)
}

func TestComputeMissingPrice(t *testing.T) {
	position := &core.Position{
		UserID:   "gus",
		Deposits: []core.Coin{{Denom: "uosmo", Amount: dec("1")}},
	}

	_, err := computer().Compute(context.Background(), position, core.DenomsData{}, nil, nil)
	require.NotNil(t, err)
	assert.Equal(t, core.ErrNoPrice, core.CodeOf(err))
}
