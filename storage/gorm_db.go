package storage

import (
	"fmt"
	"time"

	"dispatch/config"
	"dispatch/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitGormDB opens the optional postgres database that keeps sessions and
// activity logs, and migrates its two tables.
func InitGormDB(cfg config.DBConfig, timezone string) (*gorm.DB, error) {
	logLevel := logger.Warn
	if log.IsLevelEnabled(log.DebugLevel) {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN(timezone)), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database with GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(&models.SessionGorm{}, &models.ActivityLogGorm{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session and activity tables: %w", err)
	}
	log.Infof("connected to postgres %s:%s/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}
