// Package store reads the price database written by the collector.
//
// Nothing in this package writes. Each call opens its own read-only
// connection and closes it before returning, so concurrent requests never
// share a handle.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	_ "modernc.org/sqlite"

	"PriceHistory/internal/model"
)

var (
	// ErrUnavailable means the database could not be opened.
	ErrUnavailable = errors.New("store unavailable")
	// ErrQuery means the connection worked but the statement failed.
	ErrQuery = errors.New("store query failed")
	// ErrDecode means a row could not be scanned into a record.
	ErrDecode = errors.New("row decode failed")
)

const historyQuery = `SELECT date, close, rsi FROM price_data WHERE symbol = ? ORDER BY date ASC`

const summaryQuery = `SELECT symbol, COUNT(*), MIN(date), MAX(date) FROM price_data GROUP BY symbol ORDER BY symbol`

// Accessor opens the SQLite file at Path for each call.
type Accessor struct {
	Path string
}

// NewAccessor creates an Accessor for the database at path.
func NewAccessor(path string) *Accessor {
	return &Accessor{Path: path}
}

// dsn opens the file read-only so a missing database is reported instead of
// being created empty. The path is made absolute and escaped so '#', '%' and
// '?' in a file name cannot leak into the URI query or fragment.
func (a *Accessor) dsn() string {
	path := a.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=ro"}
	return u.String()
}

func (a *Accessor) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", a.dsn())
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, a.Path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, a.Path, err)
	}
	return db, nil
}

// FetchHistory returns every stored observation for symbol ordered by date.
// An empty, non-nil slice means the query succeeded with no rows. A row that
// fails to decode aborts the whole fetch.
func (a *Accessor) FetchHistory(ctx context.Context, symbol string) ([]model.PriceRecord, error) {
	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, historyQuery, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: history %s: %w", ErrQuery, symbol, err)
	}
	defer rows.Close()

	records := make([]model.PriceRecord, 0)
	for rows.Next() {
		var (
			rec model.PriceRecord
			rsi sql.NullFloat64
		)
		if err := rows.Scan(&rec.Date, &rec.Close, &rsi); err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", ErrDecode, symbol, len(records)+1, err)
		}
		if rsi.Valid {
			v := rsi.Float64
			rec.RSI = &v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: history %s: %w", ErrQuery, symbol, err)
	}
	return records, nil
}

// Summary returns row counts and date bounds for every symbol in the store.
func (a *Accessor) Summary(ctx context.Context) ([]model.SymbolSummary, error) {
	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, summaryQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: summary: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.SymbolSummary
	for rows.Next() {
		var s model.SymbolSummary
		if err := rows.Scan(&s.Symbol, &s.Rows, &s.FirstDate, &s.LastDate); err != nil {
			return nil, fmt.Errorf("%w: summary: %w", ErrDecode, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: summary: %w", ErrQuery, err)
	}
	return out, nil
}
