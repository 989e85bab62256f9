package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ps-vitor/boliga-prices/internal/domain"
)

// CSVSaleRepository stores a sale table in a single comma separated file.
type CSVSaleRepository struct {
	path string
}

func NewCSVSaleRepository(path string) *CSVSaleRepository {
	return &CSVSaleRepository{path: path}
}

func (r *CSVSaleRepository) Save(ctx context.Context, sales domain.SaleTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteCSV(r.path, sales)
}

func (r *CSVSaleRepository) FindAll(ctx context.Context) (domain.SaleTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadCSV(r.path)
}

func (r *CSVSaleRepository) Close() error { return nil }

// LoadCSV reads the sale table at path.
func LoadCSV(path string) (domain.SaleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return DecodeCSV(f, path)
}

// DecodeCSV parses a sale table from r. name is only used in errors.
//
// The header must name zip_code (or zip), date, built, m2 and m2_price.
// address, price and rooms are read when present; other columns are ignored.
func DecodeCSV(r io.Reader, name string) (domain.SaleTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return nil, &LoadError{Path: name, Line: 1, Err: err}
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, &LoadError{Path: name, Line: 1, Err: err}
	}

	var table domain.SaleTable
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: name, Err: err}
		}
		line, _ := cr.FieldPos(0)

		rec, column, err := cols.parse(row)
		if err != nil {
			return nil, &LoadError{Path: name, Line: line, Column: column, Err: err}
		}
		table = append(table, rec)
	}

	return table, nil
}

// columns holds header positions; optional columns are -1 when absent.
type columns struct {
	zip, date, built, area, pricePerArea int
	address, price, rooms                int
}

func indexColumns(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	lookup := func(names ...string) int {
		for _, n := range names {
			if i, ok := pos[n]; ok {
				return i
			}
		}
		return -1
	}

	c := columns{
		zip:          lookup(domain.ColumnZipCode, domain.ColumnZip),
		date:         lookup(domain.ColumnDate),
		built:        lookup(domain.ColumnBuildYear),
		area:         lookup(domain.ColumnArea),
		pricePerArea: lookup(domain.ColumnPricePerArea),
		address:      lookup(domain.ColumnAddress),
		price:        lookup(domain.ColumnPrice),
		rooms:        lookup(domain.ColumnRooms),
	}

	required := []struct {
		name string
		idx  int
	}{
		{domain.ColumnZipCode, c.zip},
		{domain.ColumnDate, c.date},
		{domain.ColumnBuildYear, c.built},
		{domain.ColumnArea, c.area},
		{domain.ColumnPricePerArea, c.pricePerArea},
	}
	for _, r := range required {
		if r.idx < 0 {
			return c, fmt.Errorf("%w %q", ErrMissingColumn, r.name)
		}
	}
	return c, nil
}

// parse converts one row. On failure it also returns the offending column.
func (c columns) parse(row []string) (domain.SaleRecord, string, error) {
	var rec domain.SaleRecord
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec.ZipCode = field(c.zip)
	rec.Address = field(c.address)
	rec.Rooms = field(c.rooms)

	date, err := time.Parse(domain.DateLayout, field(c.date))
	if err != nil {
		return rec, domain.ColumnDate, fmt.Errorf("date must be DD-MM-YYYY: %w", err)
	}
	rec.SaleDate = date

	if rec.BuildYear, err = strconv.Atoi(field(c.built)); err != nil {
		return rec, domain.ColumnBuildYear, err
	}
	if rec.Area, err = strconv.ParseFloat(field(c.area), 64); err != nil {
		return rec, domain.ColumnArea, err
	}
	if rec.PricePerArea, err = strconv.ParseFloat(field(c.pricePerArea), 64); err != nil {
		return rec, domain.ColumnPricePerArea, err
	}
	if math.IsNaN(rec.PricePerArea) || math.IsInf(rec.PricePerArea, 0) || rec.PricePerArea < 0 {
		return rec, domain.ColumnPricePerArea, ErrInvalidPricePerArea
	}
	if v := field(c.price); v != "" {
		if rec.Price, err = strconv.ParseFloat(v, 64); err != nil {
			return rec, domain.ColumnPrice, err
		}
	}

	return rec, "", nil
}

// WriteCSV writes sales to path, creating parent directories as needed.
func WriteCSV(path string, sales domain.SaleTable) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return replaceFile(path, func(w io.Writer) error {
		return EncodeCSV(w, sales)
	})
}

// replaceFile writes to a temporary file next to path and renames it over
// path, so readers see either the old or the new contents in full.
func replaceFile(path string, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// EncodeCSV writes sales with the canonical header and DD-MM-YYYY dates.
func EncodeCSV(w io.Writer, sales domain.SaleTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, s := range sales {
		row := []string{
			s.Address,
			s.ZipCode,
			formatFloat(s.Price),
			s.SaleDate.Format(domain.DateLayout),
			s.Rooms,
			formatFloat(s.Area),
			strconv.Itoa(s.BuildYear),
			formatFloat(s.PricePerArea),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
