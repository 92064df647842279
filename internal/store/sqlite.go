// Package store reads candle history and manages watchlists in a
// SQLite database. Candles live in one table per symbol, ordered by
// date; watchlists are two relational tables.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"WaveScan/internal/model"
)

// ErrNoCandles is returned when a symbol has no candle table or the
// table is empty.
var ErrNoCandles = errors.New("no candle data")

const dateLayout = "2006-01-02"

// Store wraps the candle/watchlist database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database and runs watchlist migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so scans can read while imports write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] candle store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlists (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS watchlist_symbols (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			watchlist_id INTEGER NOT NULL REFERENCES watchlists(id) ON DELETE CASCADE,
			symbol       TEXT NOT NULL,
			added_at     INTEGER NOT NULL,
			UNIQUE(watchlist_id, symbol)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wl_symbols ON watchlist_symbols(watchlist_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// LoadBars reads the full candle history for one symbol, ascending by
// date. A missing or empty table is reported as ErrNoCandles wrapped
// with the symbol.
func (s *Store) LoadBars(symbol string) ([]model.Bar, error) {
	q := fmt.Sprintf(`SELECT date, open, high, low, close, volume FROM %q ORDER BY date`, symbol)
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoCandles)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var (
			date string
			b    model.Bar
		)
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan candle row for %s: %w", symbol, err)
		}
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse candle date %q for %s: %w", date, symbol, err)
		}
		b.Index = len(bars)
		b.Time = t
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read candles for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoCandles)
	}
	return bars, nil
}

// SaveBars replaces the candle table for one symbol.
func (s *Store) SaveBars(symbol string, bars []model.Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save %s: %w", symbol, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, symbol)); err != nil {
		return fmt.Errorf("drop %s: %w", symbol, err)
	}
	create := fmt.Sprintf(`CREATE TABLE %q (
		date   TEXT PRIMARY KEY,
		open   REAL, high REAL, low REAL, close REAL,
		volume REAL
	)`, symbol)
	if _, err := tx.Exec(create); err != nil {
		return fmt.Errorf("create %s: %w", symbol, err)
	}
	ins := fmt.Sprintf(`INSERT INTO %q (date, open, high, low, close, volume) VALUES (?,?,?,?,?,?)`, symbol)
	stmt, err := tx.Prepare(ins)
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", symbol, err)
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.Exec(b.Time.Format(dateLayout), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert candle for %s: %w", symbol, err)
		}
	}
	return tx.Commit()
}

// ListSymbols returns the candle table names, i.e. every symbol with
// history in the database. Internal tables are skipped.
func (s *Store) ListSymbols() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM sqlite_master
		WHERE type='table'
		  AND name NOT LIKE 'sqlite_%'
		  AND name NOT IN ('watchlists', 'watchlist_symbols')
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list candle tables: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		symbols = append(symbols, name)
	}
	return symbols, rows.Err()
}

// CreateWatchlist makes a named watchlist, returning its id. Creating
// an existing name returns the existing id.
func (s *Store) CreateWatchlist(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`INSERT OR IGNORE INTO watchlists (name, created_at) VALUES (?, ?)`,
		name, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("create watchlist %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return res.LastInsertId()
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM watchlists WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup watchlist %s: %w", name, err)
	}
	return id, nil
}

// AddToWatchlist appends a symbol to a watchlist; duplicates are ignored.
func (s *Store) AddToWatchlist(watchlistID int64, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT OR IGNORE INTO watchlist_symbols (watchlist_id, symbol, added_at)
		VALUES (?, ?, ?)`, watchlistID, symbol, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("add %s to watchlist %d: %w", symbol, watchlistID, err)
	}
	return nil
}

// RemoveFromWatchlist drops a symbol from a watchlist.
func (s *Store) RemoveFromWatchlist(watchlistID int64, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM watchlist_symbols WHERE watchlist_id = ? AND symbol = ?`,
		watchlistID, symbol)
	if err != nil {
		return fmt.Errorf("remove %s from watchlist %d: %w", symbol, watchlistID, err)
	}
	return nil
}

// ListWatchlists returns all watchlist names, oldest first.
func (s *Store) ListWatchlists() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM watchlists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list watchlists: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan watchlist name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// WatchlistSymbols returns the symbols of a named watchlist in the
// order they were added.
func (s *Store) WatchlistSymbols(name string) ([]string, error) {
	rows, err := s.db.Query(`SELECT ws.symbol FROM watchlist_symbols ws
		JOIN watchlists w ON w.id = ws.watchlist_id
		WHERE w.name = ?
		ORDER BY ws.id`, name)
	if err != nil {
		return nil, fmt.Errorf("load watchlist %s: %w", name, err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan watchlist symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	log.Println("[INFO] closing candle store")
	return s.db.Close()
}
