package postgres

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"wastemanage/internal/config"
	"wastemanage/internal/infrastructure/database/postgres/models"
	"wastemanage/internal/logger"
)

const connectRetryDelay = 5 * time.Second

type DB struct {
	*gorm.DB
}

// NewDB opens the process-wide database handle. Initial connection failures
// are retried indefinitely with a fixed delay; the caller only sees an error
// when opening the handle itself fails permanently.
func NewDB(cfg *config.Config) (*DB, error) {
	dsn := cfg.Database.DSN()

	var gormLogLevel gormLogger.LogLevel
	if cfg.Server.Environment == "production" {
		gormLogLevel = gormLogger.Warn
	} else {
		gormLogLevel = gormLogger.Info
	}

	for {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogLevel),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, fmt.Errorf("error getting sql.DB: %w", dbErr)
			}

			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(5)
			sqlDB.SetConnMaxLifetime(5 * time.Minute)

			if err = sqlDB.Ping(); err == nil {
				logger.Info("Database connection established",
					zap.String("host", cfg.Database.Host),
					zap.String("database", cfg.Database.DBName),
					zap.Int("max_open_connections", 25),
					zap.Int("max_idle_connections", 5),
				)
				return &DB{DB: db}, nil
			}
			_ = sqlDB.Close()
		}

		logger.Warn("Database connection failed, retrying",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.DBName),
			zap.Duration("retry_in", connectRetryDelay),
			zap.Error(err),
		)
		time.Sleep(connectRetryDelay)
	}
}

// Migrate brings the schema up to date for all models.
func (d *DB) Migrate() error {
	return d.DB.AutoMigrate(
		&models.UserModel{},
		&models.AdminModel{},
		&models.PickupRequestModel{},
	)
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
