package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrations embed.FS

// OpenSQL opens a connection pool for driverName ("postgres" or "sqlite3"),
// checks it and brings the schema up to date.
func OpenSQL(driverName, dsn string, l *logrus.Logger) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driverName, err)
	}

	switch driverName {
	case "sqlite3":
		// sqlite allows one writer, and ":memory:" databases live on a single connection
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := NewDBContext(5 * time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driverName, err)
	}

	if err = Migrate(db, driverName, l); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded migrations for driverName that have not run yet.
// The migrate instance is not closed since that would close db as well.
func Migrate(db *sql.DB, driverName string, l *logrus.Logger) error {
	src, err := iofs.New(migrations, "migrations/"+driverName)
	if err != nil {
		return fmt.Errorf("database: migrations for %s: %w", driverName, err)
	}

	var m *migrate.Migrate
	switch driverName {
	case "sqlite3":
		drv, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("database: migrate init: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, driverName, drv)
		if err != nil {
			return fmt.Errorf("database: migrate init: %w", err)
		}
	case "postgres":
		drv, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
		if err != nil {
			return fmt.Errorf("database: migrate init: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, driverName, drv)
		if err != nil {
			return fmt.Errorf("database: migrate init: %w", err)
		}
	default:
		return fmt.Errorf("database: unsupported driver %q", driverName)
	}
	m.Log = &migrateLogger{l: l}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("database: migrate up: %w", err)
	}

	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("database: migrate version: %w", err)
	}
	l.WithFields(logrus.Fields{"driver": driverName, "version": v, "dirty": dirty}).Info("schema is up to date")
	return nil
}

type migrateLogger struct {
	l *logrus.Logger
}

func (m *migrateLogger) Printf(format string, v ...any) {
	m.l.Debugf("migrate: "+format, v...)
}

func (m *migrateLogger) Verbose() bool {
	return m.l.IsLevelEnabled(logrus.DebugLevel)
}
