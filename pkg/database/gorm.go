package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"report-automation-be/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type GormConfig struct {
	Driver   string
	DSN      string
	LogLevel logger.LogLevel
}

func getLogger(level logger.LogLevel) logger.Interface {
	if level == 0 {
		level = logger.Warn
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if driver == DriverSQLite {
		// One writer at a time; the file lock is the only serialization SQLite offers.
		sqlDB.SetMaxOpenConns(1)
		return nil
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced.
// Cascading deletes depend on that pragma.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func dialector(cfg GormConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg.DSN)), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func NewGormDB(cfg GormConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database connection string is empty")
	}

	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: getLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	if err := configureConnectionPool(db, driver); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the reports and answers tables with their indexes
// and the cascading foreign key.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
