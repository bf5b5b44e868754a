// Package database opens the PostgreSQL connection and migrates the
// schema.
package database

import (
	_ "github.com/lib/pq"
	"github.com/mytheresa/product-barcode/app/config"
	"github.com/mytheresa/product-barcode/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists the tables of the service in migration order.
func Models() []any {
	return []any{
		&models.Category{},
		&models.Template{},
		&models.Product{},
		&models.Code{},
	}
}

// Open connects with lib/pq as the database/sql driver, so constraint
// violations surface as *pq.Error.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:        cfg.DB.GetDSN(),
		DriverName: "postgres",
	}), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.DB.LogLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get database object")
	}
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	log.Info("Database connected",
		zap.String("host", cfg.DB.Host),
		zap.String("database", cfg.DB.DBName))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(Models()...); err != nil {
			return nil, errors.Wrap(err, "run database migrations")
		}
		log.Info("Database migrated")
	}
	return db, nil
}
