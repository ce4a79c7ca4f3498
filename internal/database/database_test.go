package database

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDatabase_MigratesSchema(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer func() {
		db.Close()
		os.Remove(dbPath)
	}()

	for _, table := range []string{
		"authors", "books", "libraries", "librarians",
		"users", "products", "orders",
		"groups", "permissions", "medical_records",
	} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}

	// Foreign keys must be enforced for the cascade and SET NULL rules.
	var enabled int
	require.NoError(t, db.DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestNewDatabase_KeepsForeignKeysWithDSNParams(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath + "?cache=shared")
	require.NoError(t, err)
	defer func() {
		db.Close()
		os.Remove(dbPath)
	}()

	var enabled int
	require.NoError(t, db.DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, Translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, ErrNotFound, gorm.ErrRecordNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, Translate(other))
	assert.Nil(t, Translate(nil))
}
