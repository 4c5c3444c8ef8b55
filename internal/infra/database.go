package infra

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jandervidros/internal/model"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// sqliteDriverName is go-sqlite3 with lower() replaced by a Unicode-aware
// version; the built-in one only folds ASCII, so "CÔNCAVO" would stay "cÔncavo".
const sqliteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// DBOptions configures NewDatabase.
type DBOptions struct {
	Driver       string
	DSN          string
	Debug        bool
	MaxOpenConns int
}

// NewDatabase opens a GORM connection for the configured driver and sizes the
// pool. It does not touch the schema; call Migrate for that.
func NewDatabase(opts DBOptions) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	level := logger.Silent
	if opts.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	if opts.Driver == DriverSQLite {
		// A shared in-memory database lives only as long as one connection does,
		// and sqlite serialises writers anyway.
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(min(5, maxOpen))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres, "":
		return postgres.Open(dsn), nil
	case DriverMySQL:
		cfg, err := mysqldrv.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("mysql dsn: %w", err)
		}
		// RowsAffected must count matched rows so an update that changes nothing
		// is not mistaken for a missing id.
		cfg.ClientFoundRows = true
		cfg.ParseTime = true
		return mysql.Open(cfg.FormatDSN()), nil
	case DriverSQLite:
		return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// Migrate creates or updates every table and then applies the idempotent
// patches AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches creates the secondary indexes AutoMigrate cannot declare
// on a single field. HasIndex guards each one so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct {
		model interface{}
		name  string
		sql   string
	}{
		// newest-first transaction list
		{&model.Transaction{}, "idx_transactions_created_at",
			"CREATE INDEX idx_transactions_created_at ON transactions (created_at)"},
		// agenda ordering
		{&model.Appointment{}, "idx_appointments_date_time",
			"CREATE INDEX idx_appointments_date_time ON appointments (date, time)"},
	}
	m := db.Migrator()
	for _, p := range patches {
		if m.HasIndex(p.model, p.name) {
			continue
		}
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.name, err)
		}
	}
	return nil
}
