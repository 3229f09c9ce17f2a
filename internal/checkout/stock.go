package checkout

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockLine struct {
	ProductID   string
	VariationID string // empty for simple products
	Qty         int
}

// DeductStockInTx runs inside a transaction owned by the caller (no
// nested tx); order creation calls it before writing the order rows.
// Variation lines decrement product_variations.stock_qty, simple lines
// decrement products.stock_qty, both under SELECT ... FOR UPDATE.
func DeductStockInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	variationWant := map[string]int{}
	productWant := map[string]int{}
	for _, ln := range lines {
		q := ln.Qty
		if q < 1 {
			q = 1
		}
		if ln.VariationID != "" {
			variationWant[ln.VariationID] += q
		} else {
			productWant[ln.ProductID] += q
		}
	}

	if err := deductTable(ctx, tx, "product_variations", variationWant); err != nil {
		return err
	}
	return deductTable(ctx, tx, "products", productWant)
}

func deductTable(ctx context.Context, tx *gorm.DB, table string, want map[string]int) error {
	if len(want) == 0 {
		return nil
	}

	// deterministic lock order
	ids := make([]string, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type stockRow struct {
		ID       string `gorm:"column:id"`
		StockQty int    `gorm:"column:stock_qty"`
	}
	var rows []stockRow

	q := tx.WithContext(ctx).Table(table).Select("id", "stock_qty")
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return err
	}

	avail := make(map[string]int, len(rows))
	for _, r := range rows {
		avail[r.ID] = r.StockQty
	}

	var oos []OutOfStockItem
	for _, id := range ids {
		req := want[id]
		av, ok := avail[id]
		if !ok || av < req {
			oos = append(oos, OutOfStockItem{ItemID: id, Requested: req, Available: av})
		}
	}
	if len(oos) > 0 {
		return &OutOfStockError{Items: oos}
	}

	for _, id := range ids {
		req := want[id]
		res := tx.WithContext(ctx).
			Table(table).
			Where("id = ?", id).
			UpdateColumn("stock_qty", gorm.Expr("stock_qty - ?", req))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return &OutOfStockError{Items: []OutOfStockItem{{ItemID: id, Requested: req, Available: 0}}}
		}
	}

	return nil
}

// DeductStockTx: tx + retry wrapper for callers outside order creation.
func DeductStockTx(ctx context.Context, db *gorm.DB, lines []StockLine) error {
	return WithTxRetry(ctx, db, 3, func(tx *gorm.DB) error {
		return DeductStockInTx(ctx, tx, lines)
	})
}

// WithTxRetry retries a transaction on MySQL deadlock / lock timeout.
func WithTxRetry(ctx context.Context, db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		lastErr = err

		if isRetryableMySQLError(err) && i < attempts-1 {
			time.Sleep(time.Duration(50*(i+1)) * time.Millisecond)
			continue
		}
		return err
	}
	return lastErr
}

func isRetryableMySQLError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1213: Deadlock found; 1205: Lock wait timeout
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}
