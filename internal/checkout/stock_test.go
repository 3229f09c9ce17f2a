package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/checkout"
)

func openStockDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &catalog.Variation{}))

	require.NoError(t, db.Create(&catalog.Product{
		ID: "p1", Slug: "lamp", Title: "Lamp", ProductType: catalog.TypeSimple,
		Status: catalog.StatusActive, StockQty: 10,
	}).Error)
	require.NoError(t, db.Create(&catalog.Variation{
		ID: "v1", ProductID: "p2", TermIDs: catalog.EncodeIDs([]string{"black"}), StockQty: 5,
	}).Error)
	return db
}

func stockOf(t *testing.T, db *gorm.DB, table, id string) int {
	t.Helper()
	var qty int
	require.NoError(t, db.Table(table).Select("stock_qty").Where("id = ?", id).Scan(&qty).Error)
	return qty
}

func TestDeductStockTx_MixedLines(t *testing.T) {
	db := openStockDB(t)

	err := checkout.DeductStockTx(context.Background(), db, []checkout.StockLine{
		{ProductID: "p1", Qty: 4},
		{ProductID: "p2", VariationID: "v1", Qty: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, stockOf(t, db, "products", "p1"))
	assert.Equal(t, 3, stockOf(t, db, "product_variations", "v1"))
}

func TestDeductStockTx_InsufficientStockRollsBack(t *testing.T) {
	db := openStockDB(t)

	err := checkout.DeductStockTx(context.Background(), db, []checkout.StockLine{
		{ProductID: "p1", Qty: 4},
		{ProductID: "p2", VariationID: "v1", Qty: 6}, // only 5 available
	})

	var oos *checkout.OutOfStockError
	require.ErrorAs(t, err, &oos)
	require.Len(t, oos.Items, 1)
	assert.Equal(t, "v1", oos.Items[0].ItemID)
	assert.Equal(t, 6, oos.Items[0].Requested)
	assert.Equal(t, 5, oos.Items[0].Available)

	// nothing was deducted
	assert.Equal(t, 10, stockOf(t, db, "products", "p1"))
	assert.Equal(t, 5, stockOf(t, db, "product_variations", "v1"))
}

func TestDeductStockTx_UnknownIDReported(t *testing.T) {
	db := openStockDB(t)

	err := checkout.DeductStockTx(context.Background(), db, []checkout.StockLine{
		{ProductID: "missing", Qty: 1},
	})

	var oos *checkout.OutOfStockError
	require.ErrorAs(t, err, &oos)
	require.Len(t, oos.Items, 1)
	assert.Equal(t, "missing", oos.Items[0].ItemID)
	assert.Zero(t, oos.Items[0].Available)
}

func TestDeductStockTx_MergesDuplicateLines(t *testing.T) {
	db := openStockDB(t)

	err := checkout.DeductStockTx(context.Background(), db, []checkout.StockLine{
		{ProductID: "p1", Qty: 6},
		{ProductID: "p1", Qty: 6}, // 12 total, only 10 in stock
	})

	var oos *checkout.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 12, oos.Items[0].Requested)
}

func TestDeductStockTx_NoLines(t *testing.T) {
	db := openStockDB(t)
	require.NoError(t, checkout.DeductStockTx(context.Background(), db, nil))
}
