package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"esitemart.com/app/internal/catalog"
	apphttp "esitemart.com/app/internal/http"
	"esitemart.com/app/internal/mailer"
	"esitemart.com/app/internal/payments"
	"esitemart.com/app/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx := context.Background()

	db, err := openDB()
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, product cache disabled", "addr", addr, "err", err)
			rdb = nil
		}
	}
	cacheTTL := durationEnv("CACHE_TTL", 5*time.Minute)

	store, err := storage.FromEnv(ctx)
	if err != nil {
		return err
	}
	log.Info("storage ready", "driver", store.Driver)

	var mail mailer.Service
	if host := os.Getenv("SMTP_HOST"); host != "" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     host,
			Port:     envOr("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		})
	} else {
		log.Warn("SMTP_HOST not set, outgoing mail disabled")
		mail = &mailer.Mock{}
	}

	currency := envOr("CURRENCY", "INR")

	var paySvc *payments.Service
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	if keySecret := os.Getenv("RAZORPAY_KEY_SECRET"); keyID != "" && keySecret != "" {
		paySvc = payments.NewService(db, payments.NewRazorpay(keyID, keySecret), currency)
		paySvc.SetLogger(log)
	} else {
		log.Warn("razorpay keys not set, gateway checkout disabled")
	}

	cookieSecret := os.Getenv("COOKIE_SECRET")
	if cookieSecret == "" {
		return errEnv("COOKIE_SECRET")
	}

	r := apphttp.NewRouter(apphttp.RouterConfig{
		DB:            db,
		Logger:        log,
		Cache:         catalog.NewCache(rdb, cacheTTL),
		Storage:       store.Storage,
		Mailer:        mail,
		Payments:      paySvc,
		RazorpayKeyID: keyID,
		CookieSecret:  []byte(cookieSecret),
		SecureCookie:  os.Getenv("SECURE_COOKIES") == "true",
		SessionTTL:    durationEnv("SESSION_TTL", 7*24*time.Hour),
		MailFrom:      envOr("MAIL_FROM", "no-reply@esitemart.com"),
		Currency:      currency,
	})

	addr := ":" + envOr("PORT", "8080")
	log.Info("listening", "addr", addr)
	return r.Run(addr)
}

func openDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		return nil, errEnv("DATABASE_DSN")
	}
	return gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func errEnv(key string) error { return fmt.Errorf("%s must be set", key) }
