package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"esitemart.com/app/internal/cart"
	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/orders"
	"esitemart.com/app/internal/payments"
	"esitemart.com/app/internal/users"
)

func main() {
	_ = godotenv.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}
	log.Info("migrate done")
}

func run() error {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		return fmt.Errorf("DATABASE_DSN must be set")
	}
	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&middleware.Session{},

		&catalog.Category{},
		&catalog.Brand{},
		&catalog.Tag{},
		&catalog.Attribute{},
		&catalog.Term{},
		&catalog.Product{},
		&catalog.Variation{},
		&catalog.Image{},

		&cart.Cart{},
		&cart.CartItem{},

		&orders.Order{},
		&orders.OrderItem{},
		&payments.Payment{},
	)
}
