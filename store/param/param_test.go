package param

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

func TestParamStoreSavePersistsDelisting(t *testing.T) {
	ctx := context.Background()
	database := testDB(t)
	defer database.Close()

	store := New(database)

	row := &core.AssetParam{
		Denom:                     "uosmo",
		MaxLTV:                    dec("0.5"),
		LiquidationThreshold:      dec("0.55"),
		LiquidationBonus:          dec("0.1"),
		WhitelistedForLTV:         true,
		WhitelistedForLiquidation: true,
	}
	require.Nil(t, store.Save(ctx, database, row))
	require.NotZero(t, row.ID)

	// soft retiring an asset drops the LTV tier only; the false flag must
	// actually be written
	row.WhitelistedForLTV = false
	require.Nil(t, store.Save(ctx, database, row))

	found, err := store.Find(ctx, "uosmo")
	require.Nil(t, err)
	assert.False(t, found.WhitelistedForLTV)
	assert.True(t, found.WhitelistedForLiquidation)
	assert.Equal(t, "0.5", found.MaxLTV.String())
	assert.Equal(t, int64(1), found.Version)
}
