package configs

import (
	"fmt"
	"log"
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 5
	connMaxIdleTime = 10 * time.Second
)

// Models in dependency order; DropTable walks it backwards.
var Models = []any{
	&entity.User{},
	&entity.ShopProfile{},
	&entity.Category{},
	&entity.Product{},
	&entity.ProductReview{},
	&entity.Address{},
	&entity.Order{},
	&entity.OrderItem{},
}

func Dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBSource), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	log.Printf("database connected (%s)", cfg.DBDriver)
	return db, nil
}

// SetupDatabase mirrors the sync modes: force drops and recreates every table,
// alter auto-migrates existing tables, default only creates missing tables.
func SetupDatabase(db *gorm.DB, force, alter bool) error {
	m := db.Migrator()
	if force {
		for i := len(Models) - 1; i >= 0; i-- {
			if err := m.DropTable(Models[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if force || alter {
		return db.AutoMigrate(Models...)
	}
	for _, model := range Models {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
