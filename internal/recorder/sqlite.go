package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"WaveScan/internal/model"
)

// SQLiteRecorder persists scan runs and trades to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so result browsing can read while a scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id        TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			strategy  TEXT NOT NULL,
			symbols   INTEGER,
			skipped   INTEGER,
			trades    INTEGER,
			avg_ret   REAL,
			note      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_trades (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL REFERENCES scan_runs(id),
			symbol       TEXT NOT NULL,
			anchor_kind  TEXT,
			anchor_price REAL,
			entry_time   TEXT,
			entry_price  REAL,
			entry_reason TEXT,
			stop_price   REAL,
			exit_time    TEXT,
			exit_price   REAL,
			exit_reason  TEXT,
			return_pct   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_run ON scan_trades(run_id)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// NewScanRun allocates a run with a fresh id, ready to fill in and record.
func NewScanRun(strategy string) *ScanRun {
	return &ScanRun{ID: uuid.NewString(), Strategy: strategy}
}

func (r *SQLiteRecorder) RecordRun(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_runs
		(id, timestamp, strategy, symbols, skipped, trades, avg_ret, note)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.ID, time.Now().Unix(), run.Strategy,
		run.Symbols, run.Skipped, run.Trades, run.AvgRet, run.Note,
	)
	return err
}

func (r *SQLiteRecorder) RecordTrades(runID, symbol string, trades []*model.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin trade insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO scan_trades
		(run_id, symbol, anchor_kind, anchor_price,
		 entry_time, entry_price, entry_reason, stop_price,
		 exit_time, exit_price, exit_reason, return_pct)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare trade insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		_, err := stmt.Exec(
			runID, symbol, string(t.Anchor.Kind), t.Anchor.Price,
			t.EntryTime.Format("2006-01-02"), t.EntryPrice, t.EntryReason, t.StopPrice,
			t.ExitTime.Format("2006-01-02"), t.ExitPrice, t.ExitReason, t.ReturnPct(),
		)
		if err != nil {
			return fmt.Errorf("insert trade for %s: %w", symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

var _ Recorder = (*SQLiteRecorder)(nil)
