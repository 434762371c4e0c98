package cmd

import (
	"fmt"
	"strings"

	"redbank/core"
	"redbank/pkg/number"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// admin entry points; the caller is the configured owner
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "manage markets",
}

var marketInitCmd = &cobra.Command{
	Use:   "init <denom> [key=value ...]",
	Short: "list a new asset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		req, err := assetReq(args)
		if err != nil {
			return err
		}

		return provideBankService(database).InitAsset(cmd.Context(), req)
	},
}

var marketUpdateCmd = &cobra.Command{
	Use:   "update <denom> [key=value ...]",
	Short: "update a listed asset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		req, err := assetReq(args)
		if err != nil {
			return err
		}

		return provideBankService(database).UpdateAsset(cmd.Context(), req)
	},
}

var limitCmd = &cobra.Command{
	Use:   "limit <user> <denom> <limit>",
	Short: "set an uncollateralized loan limit",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		return provideBankService(database).UpdateUncollateralizedLoanLimit(
			cmd.Context(),
			cfg.Owner,
			args[0],
			args[1],
			number.Decimal(args[2]),
		)
	},
}

func assetReq(args []string) (core.AssetReq, error) {
	req := core.AssetReq{
		Caller:         cfg.Owner,
		Denom:          args[0],
		DepositEnabled: true,
		BorrowEnabled:  true,
	}

	for _, arg := range args[1:] {
		kv := strings.SplitN(arg, "=", 2)
		if len(kv) != 2 {
			return req, fmt.Errorf("malformed argument %q, expect key=value", arg)
		}

		key, value := kv[0], kv[1]
		switch key {
		case "reserve_factor":
			req.ReserveFactor = number.Decimal(value)
		case "optimal_utilization":
			req.OptimalUtilization = number.Decimal(value)
		case "base_rate":
			req.BaseRate = number.Decimal(value)
		case "slope_1":
			req.Slope1 = number.Decimal(value)
		case "slope_2":
			req.Slope2 = number.Decimal(value)
		case "max_ltv":
			req.MaxLTV = number.Decimal(value)
		case "liquidation_threshold":
			req.LiquidationThreshold = number.Decimal(value)
		case "liquidation_bonus":
			req.LiquidationBonus = number.Decimal(value)
		case "deposit_cap":
			req.DepositCap = number.Decimal(value)
		case "deposit_enabled":
			req.DepositEnabled = cast.ToBool(value)
		case "borrow_enabled":
			req.BorrowEnabled = cast.ToBool(value)
		default:
			return req, fmt.Errorf("unknown key %q", key)
		}
	}

	return req, nil
}

func init() {
	marketCmd.AddCommand(marketInitCmd, marketUpdateCmd)
	rootCmd.AddCommand(marketCmd, limitCmd)
}
