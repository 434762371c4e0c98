package config

import (
	"time"

	"redbank/core"
	"redbank/pkg/number"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("REDBANK")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return nil
}

func defaults(config *core.Config) {
	if config.CloseFactor.IsZero() {
		config.CloseFactor = number.Decimal("0.5")
	}

	if config.RewardsCollector == "" {
		config.RewardsCollector = "rewards-collector"
	}

	if config.Oracle.StaleAfter <= 0 {
		config.Oracle.StaleAfter = time.Minute
	}

	if config.Oracle.LiquidationStaleAfter <= 0 {
		config.Oracle.LiquidationStaleAfter = 5 * time.Minute
	}
}
