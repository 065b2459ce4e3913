package db

import (
	"context"
	"fmt"

	"github.com/ikkim/shop-backend/config"
	appLogger "github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize initializes the database connection
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to database", appLogger.Fields{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
	})

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Use silent mode, we'll use our own logger
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	appLogger.Info("Database connection established successfully", appLogger.Fields{
		"max_idle_conns": cfg.MaxIdleConns,
		"max_open_conns": cfg.MaxOpenConns,
	})
	return nil
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// WithSession runs fn on a fresh session bound to ctx. The session's
// connection goes back to the pool when fn returns, on every path.
func WithSession(ctx context.Context, base *gorm.DB, fn func(tx *gorm.DB) error) error {
	return fn(base.WithContext(ctx).Session(&gorm.Session{}))
}

// WithTransaction runs fn inside a transaction bound to ctx. The transaction
// is committed when fn returns nil and rolled back on error or panic.
func WithTransaction(ctx context.Context, base *gorm.DB, fn func(tx *gorm.DB) error) error {
	return base.WithContext(ctx).Transaction(fn)
}
