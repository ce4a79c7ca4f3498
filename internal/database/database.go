// Package database owns the SQLite connection and schema migration.
// Entity-specific operations live in the per-entity subpackages
// (books, authors, libraries, store, users).
package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/catalog/internal/entities"
)

// ErrNotFound is returned by repositories when a unique-key lookup matches
// no row. It wraps gorm.ErrRecordNotFound so both can be tested with
// errors.Is.
var ErrNotFound = fmt.Errorf("record not found: %w", gorm.ErrRecordNotFound)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	// Cascade and SET NULL rules rely on SQLite enforcing foreign keys.
	dsn := dbPath
	if !strings.Contains(dsn, "_foreign_keys") {
		if strings.Contains(dsn, "?") {
			dsn += "&_foreign_keys=on"
		} else {
			dsn += "?_foreign_keys=on"
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
		&entities.Library{},
		&entities.Librarian{},
		&entities.User{},
		&entities.Product{},
		&entities.Order{},
		&entities.Group{},
		&entities.Permission{},
		&entities.MedicalRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Translate maps gorm's not-found sentinel to ErrNotFound at the repository
// boundary and passes everything else through.
func Translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
