// Package db opens and migrates the PostgreSQL store.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	// Registers the "postgres" database/sql driver used by the dialector.
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/receipt-split/backend/config"
	"github.com/receipt-split/backend/internal/integration/persistence/model"
)

const pingTimeout = 5 * time.Second

// Open connects to PostgreSQL, sizes the pool and checks the server answers.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        cfg.URL,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return conn, nil
}

// Close releases the connection pool behind conn.
func Close(conn *gorm.DB) error {
	pool, err := conn.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// Migrate creates or updates every table the service uses.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// Models lists the persisted models in dependency order.
func Models() []any {
	return []any{
		&model.UserModel{},
		&model.StoreModel{},
		&model.CouponModel{},
		&model.ReceiptModel{},
		&model.ReceiptItemModel{},
		&model.ItemAssignmentModel{},
		&model.ReceiptParticipantModel{},
		&model.SettlementModel{},
		&model.SettlementEntryModel{},
		&model.EmailQueueModel{},
	}
}
