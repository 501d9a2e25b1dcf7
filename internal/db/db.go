// Package db opens the backend database and prepares its schema.
package db

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/gestion-commandes/internal/config"
	"github.com/diewo77/gestion-commandes/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Models lists every table managed by AutoMigrate.
var Models = []any{
	&models.User{},
	&models.Client{},
	&models.Product{},
	&models.Order{},
	&models.OrderLine{},
	&models.Proforma{},
	&models.ProformaLine{},
}

// Open connects with the configured driver. Network databases get a few
// retries so the server can start alongside its database container.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var dialector gorm.Dialector
	attempts := 5
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN())
		attempts = 1
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	var conn *gorm.DB
	var err error
	for i := 0; i < attempts; i++ {
		conn, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.Printf("database connection attempt %d/%d failed: %v", i+1, attempts, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	if err := conn.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return conn, nil
}

// Migrate creates or updates the schema with AutoMigrate.
func Migrate(conn *gorm.DB) error {
	for _, m := range Models {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// MigrateSQL applies the embedded SQL migrations to a PostgreSQL database.
func MigrateSQL(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Prepare builds the schema the way the configuration asks: SQL migrations
// for postgres when enabled, AutoMigrate otherwise.
func Prepare(conn *gorm.DB, cfg *config.Config) error {
	if cfg.App.Migrations && cfg.Database.Driver == "postgres" {
		return MigrateSQL(cfg.Database.URL())
	}
	return Migrate(conn)
}

// Seed inserts a small demo catalogue when the products table is empty.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	products := []models.Product{
		{Code: "VIS-M6", Designation: "Vis M6 x 20", Suite: "boîte de 100", PrixAchatHT: 3.2, TotalHT: 5.5, TVA: 19},
		{Code: "ECR-M6", Designation: "Écrou M6", Suite: "boîte de 100", PrixAchatHT: 2.1, TotalHT: 3.9, TVA: 19},
		{Code: "RON-M6", Designation: "Rondelle M6", PrixAchatHT: 1.0, TotalHT: 2.0, TVA: 19},
	}
	return conn.Create(&products).Error
}
