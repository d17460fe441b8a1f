package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openjobs/openjobs/internal/config"
	"github.com/openjobs/openjobs/internal/models"
)

// Connect opens the postgres pool and verifies it with a ping. Pool
// limits come from config; recycling stale connections is what keeps
// long-idle deployments from hitting dead sockets.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: pool handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.PoolMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.PoolMaxIdle)
	sqlDB.SetConnMaxLifetime(cfg.PoolMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema in place.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Job{})
}

// Reset drops both tables and recreates them. Used by the bootstrap
// CLI only, never by the serving process.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&models.Job{}, &models.User{}); err != nil {
		return fmt.Errorf("database: drop: %w", err)
	}
	return Migrate(db)
}
