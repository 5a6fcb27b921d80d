package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverNameConstant                = "sqlite"
	sqliteDataSourceRequiredMessageConstant = "sqlite data source is required"
	sqliteOpenErrorTemplateConstant         = "failed to open sqlite store %s: %w"
	sqliteSchemaErrorTemplateConstant       = "failed to prepare sqlite schema: %w"
	sqliteCreateTableStatementConstant      = `CREATE TABLE IF NOT EXISTS groid_items (item_key TEXT PRIMARY KEY, item_value TEXT NOT NULL)`
	sqliteSelectValueStatementConstant      = `SELECT item_value FROM groid_items WHERE item_key = ?`
	sqliteUpsertStatementConstant           = `INSERT INTO groid_items (item_key, item_value) VALUES (?, ?) ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value`
	sqliteDeleteStatementConstant           = `DELETE FROM groid_items WHERE item_key = ?`
	sqliteClearStatementConstant            = `DELETE FROM groid_items`
	sqliteKeyAtStatementConstant            = `SELECT item_key FROM groid_items ORDER BY rowid LIMIT 1 OFFSET ?`
	sqliteCountStatementConstant            = `SELECT COUNT(*) FROM groid_items`
	sqliteTotalSizeStatementConstant        = `SELECT COALESCE(SUM(LENGTH(CAST(item_key AS BLOB)) + LENGTH(CAST(item_value AS BLOB))), 0) FROM groid_items`
)

// ErrSQLiteDataSourceRequired indicates that OpenSQLiteStore received an empty data source.
var ErrSQLiteDataSourceRequired = errors.New(sqliteDataSourceRequiredMessageConstant)

// SQLiteStore keeps entries in a SQLite table and enumerates keys in insertion order.
type SQLiteStore struct {
	database *sql.DB
	quota    storageQuota
}

// OpenSQLiteStore opens (creating when necessary) the SQLite database at dataSource.
func OpenSQLiteStore(dataSource string, quotaBytes int64) (*SQLiteStore, error) {
	trimmedDataSource := strings.TrimSpace(dataSource)
	if len(trimmedDataSource) == 0 {
		return nil, ErrSQLiteDataSourceRequired
	}

	database, openError := sql.Open(sqliteDriverNameConstant, trimmedDataSource)
	if openError != nil {
		return nil, fmt.Errorf(sqliteOpenErrorTemplateConstant, trimmedDataSource, openError)
	}
	database.SetMaxOpenConns(1)

	if _, schemaError := database.Exec(sqliteCreateTableStatementConstant); schemaError != nil {
		_ = database.Close()
		return nil, fmt.Errorf(sqliteSchemaErrorTemplateConstant, schemaError)
	}

	return &SQLiteStore{database: database, quota: storageQuota{limitBytes: quotaBytes}}, nil
}

// GetItem implements KeyValueStore.
func (store *SQLiteStore) GetItem(key string) (string, bool, error) {
	var value string
	queryError := store.database.QueryRow(sqliteSelectValueStatementConstant, key).Scan(&value)
	if errors.Is(queryError, sql.ErrNoRows) {
		return "", false, nil
	}
	if queryError != nil {
		return "", false, queryError
	}
	return value, true, nil
}

// SetItem implements KeyValueStore.
func (store *SQLiteStore) SetItem(key string, value string) (resultError error) {
	transaction, beginError := store.database.Begin()
	if beginError != nil {
		return beginError
	}
	defer func() {
		if resultError != nil {
			_ = transaction.Rollback()
		}
	}()

	if store.quota.limitBytes > 0 {
		var currentSize int64
		if sizeError := transaction.QueryRow(sqliteTotalSizeStatementConstant).Scan(&currentSize); sizeError != nil {
			return sizeError
		}

		var previousValue string
		previousExists := true
		previousError := transaction.QueryRow(sqliteSelectValueStatementConstant, key).Scan(&previousValue)
		switch {
		case errors.Is(previousError, sql.ErrNoRows):
			previousExists = false
		case previousError != nil:
			return previousError
		}

		if !store.quota.permits(currentSize, key, previousValue, previousExists, value) {
			return ErrQuotaExceeded
		}
	}

	if _, upsertError := transaction.Exec(sqliteUpsertStatementConstant, key, value); upsertError != nil {
		return upsertError
	}
	return transaction.Commit()
}

// RemoveItem implements KeyValueStore.
func (store *SQLiteStore) RemoveItem(key string) error {
	_, deleteError := store.database.Exec(sqliteDeleteStatementConstant, key)
	return deleteError
}

// Clear implements KeyValueStore.
func (store *SQLiteStore) Clear() error {
	_, clearError := store.database.Exec(sqliteClearStatementConstant)
	return clearError
}

// Key implements KeyValueStore.
func (store *SQLiteStore) Key(index int) (string, bool, error) {
	if index < 0 {
		return "", false, nil
	}
	var key string
	queryError := store.database.QueryRow(sqliteKeyAtStatementConstant, index).Scan(&key)
	if errors.Is(queryError, sql.ErrNoRows) {
		return "", false, nil
	}
	if queryError != nil {
		return "", false, queryError
	}
	return key, true, nil
}

// Length implements KeyValueStore.
func (store *SQLiteStore) Length() (int, error) {
	var count int
	if countError := store.database.QueryRow(sqliteCountStatementConstant).Scan(&count); countError != nil {
		return 0, countError
	}
	return count, nil
}

// Close releases the database handle.
func (store *SQLiteStore) Close() error {
	return store.database.Close()
}
