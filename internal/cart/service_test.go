package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Cart{}, &CartItem{}))
	return db
}

func TestService_AddPersistsAndReturnsLines(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cc, err := NewRepo(db).CreateGuestCart(ctx)
	require.NoError(t, err)

	svc := NewService(db)
	out, err := svc.Add(ctx, cc.ID, line("sku-1", 0, 5, 1000), 2)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Quantity)

	stored, err := NewRepo(db).Items(ctx, cc.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].Quantity)
	assert.Equal(t, cc.ID, stored[0].CartID)
	assert.NotEmpty(t, stored[0].ID)
}

func TestService_AddIncrementsExistingRow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cc, err := NewRepo(db).CreateGuestCart(ctx)
	require.NoError(t, err)

	svc := NewService(db)
	_, err = svc.Add(ctx, cc.ID, line("sku-1", 0, 5, 1000), 2)
	require.NoError(t, err)
	out, err := svc.Add(ctx, cc.ID, line("sku-1", 0, 5, 1000), 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Quantity)

	// still one row
	var n int64
	require.NoError(t, db.Model(&CartItem{}).Where("cart_id = ?", cc.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestService_RejectedAddLeavesDBUntouched(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cc, err := NewRepo(db).CreateGuestCart(ctx)
	require.NoError(t, err)

	svc := NewService(db)
	_, err = svc.Add(ctx, cc.ID, line("sku-1", 0, 3, 1000), 3)
	require.NoError(t, err)

	_, err = svc.Add(ctx, cc.ID, line("sku-1", 0, 3, 1000), 1)
	assert.ErrorIs(t, err, ErrStockExceeded)

	stored, err := NewRepo(db).Items(ctx, cc.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 3, stored[0].Quantity)
}

func TestService_UpdateQuantityAndRemove(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cc, err := NewRepo(db).CreateGuestCart(ctx)
	require.NoError(t, err)

	svc := NewService(db)
	_, err = svc.Add(ctx, cc.ID, line("sku-1", 0, 5, 1000), 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, cc.ID, line("sku-2", 0, 5, 500), 1)
	require.NoError(t, err)

	out, err := svc.UpdateQuantity(ctx, cc.ID, "sku-1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, out[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, cc.ID, "missing", 1)
	assert.ErrorIs(t, err, ErrLineNotFound)

	out, err = svc.Remove(ctx, cc.ID, "sku-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "sku-2", out[0].ItemKey)

	// removing an absent key is fine
	out, err = svc.Remove(ctx, cc.ID, "sku-1")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	total, err := svc.TotalCents(ctx, cc.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, total)
}

func TestRepo_GetOrCreateUserCartReusesOpenCart(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRepo(db)

	a, err := repo.GetOrCreateUserCart(ctx, "user-1")
	require.NoError(t, err)
	b, err := repo.GetOrCreateUserCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	// an ordered cart is not reused
	require.NoError(t, db.Model(&Cart{}).Where("id = ?", a.ID).Update("status", StatusOrdered).Error)
	c, err := repo.GetOrCreateUserCart(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}
