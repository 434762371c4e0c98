package bank

import (
	"context"
	"sort"
	"time"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// in-memory stores mirroring the gorm-backed behavior: Find returns a
// zero-ID row when nothing matches, and rows are stored by value

type marketStoreFake struct {
	seq  uint64
	rows map[string]*core.Market
}

func newMarketStoreFake() *marketStoreFake {
	return &marketStoreFake{rows: map[string]*core.Market{}}
}

func (s *marketStoreFake) Create(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.seq++
	market.ID = s.seq
	cp := *market
	s.rows[market.Denom] = &cp
	return nil
}

func (s *marketStoreFake) Find(ctx context.Context, denom string) (*core.Market, error) {
	if row, ok := s.rows[denom]; ok {
		cp := *row
		return &cp, nil
	}

	return &core.Market{}, nil
}

func (s *marketStoreFake) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	for _, row := range s.rows {
		cp := *row
		markets = append(markets, &cp)
	}

	return markets, nil
}

func (s *marketStoreFake) AllAsMap(ctx context.Context) (map[string]*core.Market, error) {
	markets := map[string]*core.Market{}
	for denom, row := range s.rows {
		cp := *row
		markets[denom] = &cp
	}

	return markets, nil
}

func (s *marketStoreFake) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	market.Version++
	cp := *market
	s.rows[market.Denom] = &cp
	return nil
}

type collateralStoreFake struct {
	seq  uint64
	rows map[string]*core.Collateral
}

func newCollateralStoreFake() *collateralStoreFake {
	return &collateralStoreFake{rows: map[string]*core.Collateral{}}
}

func collateralKey(userID, accountID, denom string) string {
	return userID + "|" + accountID + "|" + denom
}

func (s *collateralStoreFake) Find(ctx context.Context, userID, accountID, denom string) (*core.Collateral, error) {
	if row, ok := s.rows[collateralKey(userID, accountID, denom)]; ok {
		cp := *row
		return &cp, nil
	}

	return &core.Collateral{}, nil
}

func (s *collateralStoreFake) FindByUser(ctx context.Context, userID, accountID string) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	for _, row := range s.rows {
		if row.UserID == userID && row.AccountID == accountID {
			cp := *row
			collaterals = append(collaterals, &cp)
		}
	}

	sort.Slice(collaterals, func(i, j int) bool { return collaterals[i].Denom < collaterals[j].Denom })
	return collaterals, nil
}

func (s *collateralStoreFake) List(ctx context.Context, userID, accountID, fromDenom string, limit int) ([]*core.Collateral, error) {
	all, _ := s.FindByUser(ctx, userID, accountID)
	var collaterals []*core.Collateral
	for _, row := range all {
		if row.Denom > fromDenom {
			collaterals = append(collaterals, row)
		}

		if len(collaterals) == limit {
			break
		}
	}

	return collaterals, nil
}

func (s *collateralStoreFake) Create(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	s.seq++
	collateral.ID = s.seq
	cp := *collateral
	s.rows[collateralKey(collateral.UserID, collateral.AccountID, collateral.Denom)] = &cp
	return nil
}

func (s *collateralStoreFake) Update(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	collateral.Version++
	cp := *collateral
	s.rows[collateralKey(collateral.UserID, collateral.AccountID, collateral.Denom)] = &cp
	return nil
}

func (s *collateralStoreFake) Delete(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	delete(s.rows, collateralKey(collateral.UserID, collateral.AccountID, collateral.Denom))
	return nil
}

func (s *collateralStoreFake) SumScaledByDenom(ctx context.Context, denom string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, row := range s.rows {
		if row.Denom == denom {
			sum = sum.Add(row.AmountScaled)
		}
	}

	return sum, nil
}

type debtStoreFake struct {
	seq  uint64
	rows map[string]*core.Debt
}

func newDebtStoreFake() *debtStoreFake {
	return &debtStoreFake{rows: map[string]*core.Debt{}}
}

func debtKey(userID, denom string) string {
	return userID + "|" + denom
}

func (s *debtStoreFake) Find(ctx context.Context, userID, denom string) (*core.Debt, error) {
	if row, ok := s.rows[debtKey(userID, denom)]; ok {
		cp := *row
		return &cp, nil
	}

	return &core.Debt{}, nil
}

func (s *debtStoreFake) FindByUser(ctx context.Context, userID string) ([]*core.Debt, error) {
	var debts []*core.Debt
	for _, row := range s.rows {
		if row.UserID == userID {
			cp := *row
			debts = append(debts, &cp)
		}
	}

	sort.Slice(debts, func(i, j int) bool { return debts[i].Denom < debts[j].Denom })
	return debts, nil
}

func (s *debtStoreFake) List(ctx context.Context, userID, fromDenom string, limit int) ([]*core.Debt, error) {
	all, _ := s.FindByUser(ctx, userID)
	var debts []*core.Debt
	for _, row := range all {
		if row.Denom > fromDenom {
			debts = append(debts, row)
		}

		if len(debts) == limit {
			break
		}
	}

	return debts, nil
}

func (s *debtStoreFake) IsBorrowing(ctx context.Context, userID string) (bool, error) {
	for _, row := range s.rows {
		if row.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

func (s *debtStoreFake) Create(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	s.seq++
	debt.ID = s.seq
	cp := *debt
	s.rows[debtKey(debt.UserID, debt.Denom)] = &cp
	return nil
}

func (s *debtStoreFake) Update(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	debt.Version++
	cp := *debt
	s.rows[debtKey(debt.UserID, debt.Denom)] = &cp
	return nil
}

func (s *debtStoreFake) Delete(ctx context.Context, tx *db.DB, debt *core.Debt) error {
	delete(s.rows, debtKey(debt.UserID, debt.Denom))
	return nil
}

func (s *debtStoreFake) SumScaledByDenom(ctx context.Context, denom string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, row := range s.rows {
		if row.Denom == denom {
			sum = sum.Add(row.AmountScaled)
		}
	}

	return sum, nil
}

type limitStoreFake struct {
	seq  uint64
	rows map[string]*core.UncollateralizedLoanLimit
}

func newLimitStoreFake() *limitStoreFake {
	return &limitStoreFake{rows: map[string]*core.UncollateralizedLoanLimit{}}
}

func (s *limitStoreFake) Find(ctx context.Context, userID, denom string) (*core.UncollateralizedLoanLimit, error) {
	if row, ok := s.rows[debtKey(userID, denom)]; ok {
		cp := *row
		return &cp, nil
	}

	return &core.UncollateralizedLoanLimit{}, nil
}

func (s *limitStoreFake) FindByUser(ctx context.Context, userID string) ([]*core.UncollateralizedLoanLimit, error) {
	var limits []*core.UncollateralizedLoanLimit
	for _, row := range s.rows {
		if row.UserID == userID {
			cp := *row
			limits = append(limits, &cp)
		}
	}

	return limits, nil
}

func (s *limitStoreFake) Set(ctx context.Context, tx *db.DB, limit *core.UncollateralizedLoanLimit) error {
	if limit.ID == 0 {
		s.seq++
		limit.ID = s.seq
	}

	cp := *limit
	s.rows[debtKey(limit.UserID, limit.Denom)] = &cp
	return nil
}

type paramStoreFake struct {
	seq  uint64
	rows map[string]*core.AssetParam
}

func newParamStoreFake() *paramStoreFake {
	return &paramStoreFake{rows: map[string]*core.AssetParam{}}
}

func (s *paramStoreFake) Find(ctx context.Context, denom string) (*core.AssetParam, error) {
	if row, ok := s.rows[denom]; ok {
		cp := *row
		return &cp, nil
	}

	return &core.AssetParam{}, nil
}

func (s *paramStoreFake) All(ctx context.Context) ([]*core.AssetParam, error) {
	var params []*core.AssetParam
	for _, row := range s.rows {
		cp := *row
		params = append(params, &cp)
	}

	return params, nil
}

func (s *paramStoreFake) Save(ctx context.Context, tx *db.DB, param *core.AssetParam) error {
	if param.ID == 0 {
		s.seq++
		param.ID = s.seq
	}

	cp := *param
	s.rows[param.Denom] = &cp
	return nil
}

type transferStoreFake struct {
	seq  uint64
	rows []*core.Transfer
}

func (s *transferStoreFake) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	s.seq++
	transfer.ID = s.seq
	cp := *transfer
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *transferStoreFake) Top(ctx context.Context, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	for _, row := range s.rows {
		if !row.Handled {
			cp := *row
			transfers = append(transfers, &cp)
		}

		if len(transfers) == limit {
			break
		}
	}

	return transfers, nil
}

func (s *transferStoreFake) Handled(ctx context.Context, tx *db.DB, id uint64) error {
	for _, row := range s.rows {
		if row.ID == id {
			row.Handled = true
		}
	}

	return nil
}

type transactionStoreFake struct {
	rows []*core.Transaction
}

func (s *transactionStoreFake) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	cp := *transaction
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *transactionStoreFake) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	for _, row := range s.rows {
		if row.TraceID == traceID {
			cp := *row
			return &cp, nil
		}
	}

	return &core.Transaction{}, nil
}

func (s *transactionStoreFake) List(ctx context.Context, offset time.Time, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	for _, row := range s.rows {
		if row.CreatedAt.After(offset) {
			cp := *row
			transactions = append(transactions, &cp)
		}

		if len(transactions) == limit {
			break
		}
	}

	return transactions, nil
}

type oracleStub struct {
	prices map[string]decimal.Decimal
}

func (s *oracleStub) Price(ctx context.Context, denom string, kind core.PriceKind) (decimal.Decimal, error) {
	price, ok := s.prices[denom]
	if !ok {
		return decimal.Zero, core.ErrNoPrice.Errorf("no price for %s", denom)
	}

	return price, nil
}
