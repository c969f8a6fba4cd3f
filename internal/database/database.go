package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/entities"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the store backing the catalog.
type Config struct {
	Driver string // "sqlite" (default) or "postgres"
	Path   string // sqlite database file
	DSN    string // postgres connection string
	Logger logger.Interface
}

// models lists every table managed by AutoMigrate.
var models = []any{
	&entities.User{},
	&entities.Author{},
	&entities.Book{},
	&entities.Chapter{},
	&entities.Review{},
	&entities.AuditEvent{},
}

type Database struct {
	DB     *gorm.DB
	driver string
}

// NewDatabase opens a sqlite database at dbPath and migrates the schema.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(Config{Driver: DriverSQLite, Path: dbPath})
}

// Open connects to the configured store and migrates the schema.
// References between entities are plain columns: no foreign key
// constraints are created.
func Open(cfg Config) (*Database, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := cfg.Logger
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormLogger,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	return &Database{DB: db, driver: driver}, nil
}

func newDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite database path is empty")
		}
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres DSN is empty")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN enables WAL and a busy timeout so that background audit writes
// do not fail with "database is locked" while a request holds the writer.
func sqliteDSN(path string) string {
	if path == ":memory:" || strings.Contains(path, "?") {
		return path
	}
	return path + "?_journal=WAL&_timeout=5000&_busy_timeout=5000"
}

// Driver reports the name of the driver in use.
func (d *Database) Driver() string {
	return d.driver
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Flush writes the records tracked by the unit of work in ctx.
func (d *Database) Flush(ctx context.Context) error {
	return flush(ctx, d.DB)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
