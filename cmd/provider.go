package cmd

import (
	"redbank/core"
	bankservice "redbank/service/bank"
	healthservice "redbank/service/health"
	incentivesservice "redbank/service/incentives"
	marketservice "redbank/service/market"
	oracleservice "redbank/service/oracle"
	paramservice "redbank/service/param"
	walletservice "redbank/service/wallet"
	"redbank/store/collateral"
	"redbank/store/debt"
	"redbank/store/limit"
	"redbank/store/market"
	"redbank/store/param"
	"redbank/store/price"
	"redbank/store/transaction"
	"redbank/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/lib/pq"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return market.New(db)
}

func provideCollateralStore(db *db.DB) core.ICollateralStore {
	return collateral.New(db)
}

func provideDebtStore(db *db.DB) core.IDebtStore {
	return debt.New(db)
}

func provideLimitStore(db *db.DB) core.ILimitStore {
	return limit.New(db)
}

func provideParamStore(db *db.DB) core.IParamStore {
	return param.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func provideTransactionStore(db *db.DB) core.ITransactionStore {
	return transaction.New(db)
}

// ------------------service------------------------------------

func provideWalletService() core.IWalletService {
	return walletservice.New()
}

func provideIncentivesService() core.IIncentivesService {
	return incentivesservice.New()
}

func provideOracleService(db *db.DB) core.IOracleService {
	return oracleservice.New(providePriceStore(db), cfg.Oracle)
}

func provideParamsService(db *db.DB) core.IParamsService {
	return paramservice.New(provideParamStore(db))
}

func provideMarketService(db *db.DB) core.IMarketService {
	return marketservice.New(
		provideMarketStore(db),
		provideCollateralStore(db),
		provideIncentivesService(),
		cfg.RewardsCollector,
	)
}

func provideHealthService(db *db.DB) core.IHealthService {
	return healthservice.New(
		provideMarketStore(db),
		provideCollateralStore(db),
		provideDebtStore(db),
		provideOracleService(db),
		provideParamsService(db),
	)
}

func provideBankService(db *db.DB) core.IBankService {
	return bankservice.New(
		db,
		provideMarketStore(db),
		provideCollateralStore(db),
		provideDebtStore(db),
		provideLimitStore(db),
		provideParamStore(db),
		provideTransferStore(db),
		provideTransactionStore(db),
		provideMarketService(db),
		provideHealthService(db),
		provideOracleService(db),
		provideParamsService(db),
		provideIncentivesService(),
		bankservice.Config{
			Owner:          cfg.Owner,
			EmergencyOwner: cfg.EmergencyOwner,
			CreditManager:  cfg.CreditManager,
			CloseFactor:    cfg.CloseFactor,
		},
	)
}
