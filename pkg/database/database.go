package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrGeneral replaces all database errors that users cannot act on.
var ErrGeneral = errors.New("an error occurred on the server during your request")

// SQLite returns the dialector for the SQLite database at path.
//
// Foreign keys are enforced. The parent directory of path is created
// when Connect is called.
func SQLite(path string) gorm.Dialector {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	return sqlite.Open(fmt.Sprintf("%s%s_pragma=foreign_keys(1)", path, separator))
}

// Postgres returns the dialector for the PostgreSQL database at dsn.
func Postgres(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// Connect opens the database and configures the connection pool.
func Connect(dialector gorm.Dialector) (*gorm.DB, error) {
	if sqliteDialector, ok := dialector.(*sqlite.Dialector); ok {
		if err := createDataDir(sqliteDialector.DSN); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger:        log.Logger,
			SlowThreshold: 200 * time.Millisecond,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	if db.Dialector.Name() == "sqlite" {
		// SQLite only allows one writer, more connections lead to SQLITE_BUSY
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
	}

	if err := registerCallbacks(db); err != nil {
		return nil, fmt.Errorf("failed to register callbacks: %w", err)
	}

	return db, nil
}

// Close closes all connections of db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	return sqlDB.Close()
}

// Ping verifies that the database can be reached.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// createDataDir creates the directory the SQLite database file is stored in.
func createDataDir(dsn string) error {
	path, _, _ := strings.Cut(dsn, "?")
	path = strings.TrimPrefix(path, "file:")

	if path == "" || strings.HasPrefix(path, ":memory:") {
		return nil
	}

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		name     string
		register func(string, func(*gorm.DB)) error
	}{
		{"finova:after_query_general", db.Callback().Query().After("*").Register},
		{"finova:after_create_general", db.Callback().Create().After("*").Register},
		{"finova:after_update_general", db.Callback().Update().After("*").Register},
		{"finova:after_delete_general", db.Callback().Delete().After("*").Register},
		{"finova:after_row_general", db.Callback().Row().After("*").Register},
		{"finova:after_raw_general", db.Callback().Raw().After("*").Register},
	}

	for _, c := range callbacks {
		if err := c.register(c.name, generalCallback); err != nil {
			return err
		}
	}

	return nil
}

// generalCallback handles errors users cannot act on.
//
// The error is logged with all details and replaced with ErrGeneral.
// gorm.ErrRecordNotFound is kept since callers use it to detect
// missing resources.
func generalCallback(db *gorm.DB) {
	if db.Error == nil || errors.Is(db.Error, gorm.ErrRecordNotFound) || errors.Is(db.Error, ErrGeneral) {
		return
	}

	event := log.Error().Str("table", db.Statement.Table)

	var sqliteErr *go_sqlite.Error
	if errors.As(db.Error, &sqliteErr) {
		event = event.Int("sqlite_code", sqliteErr.Code())
	}

	event.Msgf("%T: %v", db.Error, db.Error.Error())
	db.Error = ErrGeneral
}
