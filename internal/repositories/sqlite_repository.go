package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ps-vitor/boliga-prices/internal/domain"

	_ "modernc.org/sqlite"
)

const (
	queryCreateSales = `
		CREATE TABLE IF NOT EXISTS sales (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			address   TEXT    NOT NULL DEFAULT '',
			zip_code  TEXT    NOT NULL,
			price     REAL    NOT NULL DEFAULT 0,
			sale_date TEXT    NOT NULL,
			rooms     TEXT    NOT NULL DEFAULT '',
			built     INTEGER NOT NULL,
			m2        REAL    NOT NULL,
			m2_price  REAL    NOT NULL
		);
	`
	queryDeleteSales = `DELETE FROM sales;`
	queryInsertSale  = `
		INSERT INTO sales (address, zip_code, price, sale_date, rooms, built, m2, m2_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	querySelectSales = `
		SELECT id, address, zip_code, price, sale_date, rooms, built, m2, m2_price
		FROM sales
		ORDER BY id ASC;
	`
)

// SQLiteSaleRepository keeps the sale table in a SQLite database.
// Dates are stored in domain.DateLayout so a dump of the table reads like
// the CSV format.
type SQLiteSaleRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteSaleRepository opens (or creates) the database at path and makes
// sure the sales table exists.
func NewSQLiteSaleRepository(ctx context.Context, path string) (*SQLiteSaleRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, queryCreateSales); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating sales table: %w", err)
	}
	return &SQLiteSaleRepository{db: db, path: path}, nil
}

// OpenSQLiteSaleRepository opens an existing database for reading. A missing
// or unreadable file is a *LoadError and nothing is created on disk.
func OpenSQLiteSaleRepository(ctx context.Context, path string) (*SQLiteSaleRepository, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &LoadError{Path: path, Err: err}
	}
	return &SQLiteSaleRepository{db: db, path: path}, nil
}

func (r *SQLiteSaleRepository) Save(ctx context.Context, sales domain.SaleTable) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("BEGIN failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, queryDeleteSales); err != nil {
		return fmt.Errorf("DELETE sales failed: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, queryInsertSale)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range sales {
		_, err := stmt.ExecContext(ctx,
			s.Address,
			s.ZipCode,
			s.Price,
			s.SaleDate.Format(domain.DateLayout),
			s.Rooms,
			s.BuildYear,
			s.Area,
			s.PricePerArea,
		)
		if err != nil {
			return fmt.Errorf("INSERT sale %d failed: %w", i, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteSaleRepository) FindAll(ctx context.Context) (domain.SaleTable, error) {
	rows, err := r.db.QueryContext(ctx, querySelectSales)
	if err != nil {
		return nil, &LoadError{Path: r.path, Err: fmt.Errorf("SELECT sales failed: %w", err)}
	}
	defer rows.Close()

	var table domain.SaleTable
	for rows.Next() {
		var (
			id   int
			date string
			rec  domain.SaleRecord
		)
		err := rows.Scan(
			&id,
			&rec.Address,
			&rec.ZipCode,
			&rec.Price,
			&date,
			&rec.Rooms,
			&rec.BuildYear,
			&rec.Area,
			&rec.PricePerArea,
		)
		if err != nil {
			return nil, &LoadError{Path: r.path, Err: fmt.Errorf("failed to parse row as sale: %w", err)}
		}
		if rec.SaleDate, err = time.Parse(domain.DateLayout, date); err != nil {
			return nil, &LoadError{Path: r.path, Line: id, Column: domain.ColumnDate, Err: err}
		}
		if math.IsNaN(rec.PricePerArea) || math.IsInf(rec.PricePerArea, 0) || rec.PricePerArea < 0 {
			return nil, &LoadError{Path: r.path, Line: id, Column: domain.ColumnPricePerArea, Err: ErrInvalidPricePerArea}
		}
		table = append(table, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Path: r.path, Err: err}
	}

	return table, nil
}

func (r *SQLiteSaleRepository) Close() error {
	return r.db.Close()
}
