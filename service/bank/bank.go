package bank

import (
	"context"
	"time"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)

// Config action-surface settings
type Config struct {
	Owner          string
	EmergencyOwner string
	CreditManager  string

	// max fraction of a target's debt repayable per liquidation, (0, 1]
	CloseFactor decimal.Decimal
}

type service struct {
	db *db.DB

	markets      core.IMarketStore
	collaterals  core.ICollateralStore
	debts        core.IDebtStore
	limits       core.ILimitStore
	params       core.IParamStore
	transfers    core.ITransferStore
	transactions core.ITransactionStore

	marketz    core.IMarketService
	healthz    core.IHealthService
	oraclez    core.IOracleService
	paramz     core.IParamsService
	incentives core.IIncentivesService

	cfg Config

	// tx boundary, swapped out by tests
	run func(func(tx *db.DB) error) error
}

// New new bank service
func New(
	database *db.DB,
	markets core.IMarketStore,
	collaterals core.ICollateralStore,
	debts core.IDebtStore,
	limits core.ILimitStore,
	params core.IParamStore,
	transfers core.ITransferStore,
	transactions core.ITransactionStore,
	marketz core.IMarketService,
	healthz core.IHealthService,
	oraclez core.IOracleService,
	paramz core.IParamsService,
	incentives core.IIncentivesService,
	cfg Config,
) core.IBankService {
	s := &service{
		db:           database,
		markets:      markets,
		collaterals:  collaterals,
		debts:        debts,
		limits:       limits,
		params:       params,
		transfers:    transfers,
		transactions: transactions,
		marketz:      marketz,
		healthz:      healthz,
		oraclez:      oraclez,
		paramz:       paramz,
		incentives:   incentives,
		cfg:          cfg,
	}
	s.run = func(fn func(tx *db.DB) error) error {
		return database.Tx(fn)
	}

	return s
}

func (s *service) findMarket(ctx context.Context, denom string) (*core.Market, error) {
	market, err := s.markets.Find(ctx, denom)
	if err != nil {
		return nil, err
	}

	if market.ID == 0 {
		return nil, core.ErrAssetNotInitialized.Errorf("no market for %s", denom)
	}

	return market, nil
}

// creditCollateral upserts the (user, account, denom) row by deltaScaled.
// Returns true when a new row appeared.
func (s *service) creditCollateral(ctx context.Context, tx *db.DB, market *core.Market, userID, accountID string, deltaScaled decimal.Decimal) (bool, error) {
	row, err := s.collaterals.Find(ctx, userID, accountID, market.Denom)
	if err != nil {
		return false, err
	}

	s.incentives.OnBalanceChange(ctx, userID, market.Denom, row.AmountScaled, market.CollateralTotalScaled)

	if row.ID == 0 {
		row = &core.Collateral{
			UserID:       userID,
			AccountID:    accountID,
			Denom:        market.Denom,
			AmountScaled: deltaScaled,
			Enabled:      true,
		}

		return true, s.collaterals.Create(ctx, tx, row)
	}

	row.AmountScaled = row.AmountScaled.Add(deltaScaled)
	return false, s.collaterals.Update(ctx, tx, row)
}

// debitCollateral subtracts deltaScaled from an existing row, deleting it on
// return to zero. Returns true when the row disappeared.
func (s *service) debitCollateral(ctx context.Context, tx *db.DB, market *core.Market, row *core.Collateral, deltaScaled decimal.Decimal) (bool, error) {
	s.incentives.OnBalanceChange(ctx, row.UserID, market.Denom, row.AmountScaled, market.CollateralTotalScaled)

	row.AmountScaled = row.AmountScaled.Sub(deltaScaled)
	if !row.AmountScaled.IsPositive() {
		return true, s.collaterals.Delete(ctx, tx, row)
	}

	return false, s.collaterals.Update(ctx, tx, row)
}

func (s *service) queueTransfer(ctx context.Context, tx *db.DB, opponent, denom string, amount decimal.Decimal, source core.TransferSource) error {
	transfer := &core.Transfer{
		TraceID:  uuid.New(),
		Opponent: opponent,
		Denom:    denom,
		Amount:   amount,
		Source:   source,
	}

	return s.transfers.Create(ctx, tx, transfer)
}

func (s *service) writeTransaction(ctx context.Context, tx *db.DB, action core.ActionType, userID, targetID, denom string, amount decimal.Decimal, extra core.TransactionExtra) error {
	transaction := &core.Transaction{
		Action:    action,
		TraceID:   uuid.New(),
		UserID:    userID,
		TargetID:  targetID,
		Denom:     denom,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	transaction.SetExtra(extra)

	return s.transactions.Create(ctx, tx, transaction)
}

func interestsEvent(market *core.Market) core.InterestsUpdatedEvent {
	return core.InterestsUpdatedEvent{
		Denom:          market.Denom,
		BorrowIndex:    market.BorrowIndex,
		LiquidityIndex: market.LiquidityIndex,
		BorrowRate:     market.BorrowRate,
		LiquidityRate:  market.LiquidityRate,
	}
}

// projection helpers for pre-flight health checks

func reduceDeposit(position *core.Position, denom string, amount decimal.Decimal) {
	for i, coin := range position.Deposits {
		if coin.Denom == denom {
			next := coin.Amount.Sub(amount)
			if next.IsNegative() {
				next = decimal.Zero
			}

			position.Deposits[i].Amount = next
			return
		}
	}
}

func dropDeposit(position *core.Position, denom string) {
	deposits := position.Deposits[:0]
	for _, coin := range position.Deposits {
		if coin.Denom != denom {
			deposits = append(deposits, coin)
		}
	}

	position.Deposits = deposits
}

func addDebt(position *core.Position, denom string, amount decimal.Decimal) {
	for i, coin := range position.Debts {
		if coin.Denom == denom {
			position.Debts[i].Amount = coin.Amount.Add(amount)
			return
		}
	}

	position.Debts = append(position.Debts, core.Coin{Denom: denom, Amount: amount})
}
