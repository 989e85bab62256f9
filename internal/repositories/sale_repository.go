package repositories

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ps-vitor/boliga-prices/internal/domain"
)

// SaleRepository persists sale tables.
type SaleRepository interface {
	// Save replaces the stored table with sales.
	Save(ctx context.Context, sales domain.SaleTable) error
	// FindAll loads the whole stored table. Failures are *LoadError.
	FindAll(ctx context.Context) (domain.SaleTable, error)
	Close() error
}

// Open picks a repository for an existing table at path by its extension:
// .db, .sqlite and .sqlite3 files are SQLite databases, anything else is
// read as CSV. A SQLite file that does not exist is a *LoadError.
func Open(ctx context.Context, path string) (SaleRepository, error) {
	if isSQLite(path) {
		return OpenSQLiteSaleRepository(ctx, path)
	}
	return NewCSVSaleRepository(path), nil
}

// Create is Open for stores that are also written to: a missing SQLite
// database is created with an empty sales table.
func Create(ctx context.Context, path string) (SaleRepository, error) {
	if isSQLite(path) {
		return NewSQLiteSaleRepository(ctx, path)
	}
	return NewCSVSaleRepository(path), nil
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
