package collateral

import (
	"context"
	"testing"

	"redbank/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *db.DB {
	database := db.MustOpen(db.SqliteInMemory())
	require.Nil(t, db.Migrate(database))
	return database
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func TestCollateralStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)
	defer database.Close()

	store := New(database)

	row := &core.Collateral{
		UserID:       "alice",
		Denom:        "uosmo",
		AmountScaled: dec("300000000"),
		Enabled:      true,
	}
	require.Nil(t, store.Create(ctx, database, row))
	require.NotZero(t, row.ID)

	found, err := store.Find(ctx, "alice", "", "uosmo")
	require.Nil(t, err)
	assert.Equal(t, row.ID, found.ID)
	assert.True(t, found.Enabled)
	assert.Equal(t, "300000000", found.AmountScaled.String())

	// disabling must survive the write, not be skipped as a blank field
	found.Enabled = false
	found.AmountScaled = dec("100000000")
	require.Nil(t, store.Update(ctx, database, found))

	found, err = store.Find(ctx, "alice", "", "uosmo")
	require.Nil(t, err)
	assert.False(t, found.Enabled)
	assert.Equal(t, "100000000", found.AmountScaled.String())
	assert.Equal(t, int64(1), found.Version)

	sum, err := store.SumScaledByDenom(ctx, "uosmo")
	require.Nil(t, err)
	assert.Equal(t, "100000000", sum.String())

	require.Nil(t, store.Delete(ctx, database, found))

	found, err = store.Find(ctx, "alice", "", "uosmo")
	require.Nil(t, err)
	assert.Zero(t, found.ID)
}

func TestCollateralStoreList(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)
	defer database.Close()

	store := New(database)

	for _, denom := range []string{"uatom", "uosmo", "uusdc"} {
		require.Nil(t, store.Create(ctx, database, &core.Collateral{
			UserID:       "bob",
			Denom:        denom,
			AmountScaled: dec("1000000"),
			Enabled:      true,
		}))
	}

	page, err := store.List(ctx, "bob", "", "uatom", 2)
	require.Nil(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "uosmo", page[0].Denom)
	assert.Equal(t, "uusdc", page[1].Denom)
}
