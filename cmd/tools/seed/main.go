package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/users"
)

// Seeds an admin account plus a small demo catalog. Safe to re-run: it
// skips anything that already exists.
func main() {
	_ = godotenv.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(context.Background(), log); err != nil {
		log.Error("seed failed", "err", err)
		os.Exit(1)
	}
	log.Info("seed done")
}

func run(ctx context.Context, log *slog.Logger) error {
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

	if err := seedAdmin(db, log); err != nil {
		return err
	}
	return seedCatalog(ctx, db, log)
}

func seedAdmin(db *gorm.DB, log *slog.Logger) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping admin")
		return nil
	}

	var count int64
	if err := db.Model(&users.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&users.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         users.RoleAdmin,
		Approved:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}).Error
}

func seedCatalog(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	var count int64
	if err := db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("catalog not empty, skipping demo data")
		return nil
	}

	categories := catalog.NewCategoryRepo(db)
	brands := catalog.NewBrandRepo(db)
	attrs := catalog.NewAttributeRepo(db)
	products := catalog.NewRepo(db)

	electronics, err := categories.Create(ctx, "Electronics", "electronics", "")
	if err != nil {
		return err
	}
	acme, err := brands.Create(ctx, "Acme", "acme", "")
	if err != nil {
		return err
	}

	color, err := attrs.Create(ctx, "Color", "color")
	if err != nil {
		return err
	}
	black, err := attrs.AddTerm(ctx, color.ID, "Black", "black")
	if err != nil {
		return err
	}
	silver, err := attrs.AddTerm(ctx, color.ID, "Silver", "silver")
	if err != nil {
		return err
	}

	_, err = products.CreateProduct(ctx, catalog.CreateProductInput{
		Title:       "Acme Desk Lamp",
		Slug:        "acme-desk-lamp",
		Description: "A simple desk lamp.",
		ProductType: catalog.TypeSimple,
		Status:      catalog.StatusActive,
		PriceCents:  249900,
		StockQty:    40,
		SKU:         "LAMP-1",
		CategoryID:  &electronics.ID,
		BrandID:     &acme.ID,
		LeadDays:    2,
		CutoffTime:  "14:00",
	})
	if err != nil {
		return err
	}

	headphones, err := products.CreateProduct(ctx, catalog.CreateProductInput{
		Title:        "Acme Headphones",
		Slug:         "acme-headphones",
		Description:  "Over-ear headphones, two colors.",
		ProductType:  catalog.TypeVariable,
		Status:       catalog.StatusActive,
		CategoryID:   &electronics.ID,
		BrandID:      &acme.ID,
		LeadDays:     3,
		CutoffTime:   "14:00",
		AttributeIDs: []string{color.ID},
	})
	if err != nil {
		return err
	}

	if _, err := products.AddVariation(ctx, headphones.ID, []string{black.ID}, 799900, 699900, 15, "HP-BLK", ""); err != nil {
		return err
	}
	if _, err := products.AddVariation(ctx, headphones.ID, []string{silver.ID}, 799900, 0, 5, "HP-SLV", ""); err != nil {
		return err
	}

	return nil
}
