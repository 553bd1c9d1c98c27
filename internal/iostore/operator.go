// Package iostore implements database operations for the local
// SQLite store. This is an impure I/O package that implements
// contracts defined in pkg/.
package iostore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/polyglothq/polydb/pkg/config"
	"github.com/polyglothq/polydb/pkg/schema"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Operator owns the SQLite connection. It is the single gateway all
// io packages go through; every multi-row mutation runs inside
// Transaction.
type Operator struct {
	cfg *config.Config
	db  *gorm.DB
}

// New creates a new Operator (without connecting).
func New(cfg *config.Config) *Operator {
	return &Operator{cfg: cfg}
}

// Connect opens (creating if needed) the SQLite database file with
// WAL journaling and foreign keys enabled.
func (o *Operator) Connect() error {
	path := o.cfg.DatabasePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000",
		path,
	)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return ConnectionError(path, err)
	}

	o.db = db
	slog.Debug("Connected to database", "path", path)
	return nil
}

// Close releases the underlying SQLite connection.
func (o *Operator) Close() error {
	if o.db == nil {
		return nil
	}
	sqlDB, err := o.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm handle for read-only queries.
func (o *Operator) DB() *gorm.DB {
	return o.db
}

// Transaction executes fn inside one scoped transaction with
// guaranteed rollback on any failure path, so the store never
// observes a half-applied mutation.
func (o *Operator) Transaction(
	ctx context.Context,
	fn func(tx *gorm.DB) error,
) error {
	if o.db == nil {
		return NotConnectedError()
	}
	return o.db.WithContext(ctx).Transaction(fn)
}

// Create creates or migrates the database schema. Implements
// polydb.SchemaManager.
func (o *Operator) Create(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}
	if err := schema.Migrate(o.db.WithContext(ctx)); err != nil {
		return SchemaCreateError(err)
	}
	slog.Info("Database schema is up to date",
		"tables", len(schema.AllModels()))
	return nil
}

// Setting returns the value stored under key, or def when the key is
// absent.
func (o *Operator) Setting(ctx context.Context, key, def string) (string, error) {
	if o.db == nil {
		return "", NotConnectedError()
	}
	var s schema.Setting
	err := o.db.WithContext(ctx).First(&s, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return s.Value, nil
}

// SetSetting upserts a settings row inside the given transaction.
func SetSetting(tx *gorm.DB, key, value string) error {
	s := schema.Setting{Key: key, Value: value}
	err := tx.Save(&s).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}
