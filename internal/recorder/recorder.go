// Package recorder persists scan runs and their trades for later
// analysis. Rows are append-only.
package recorder

import "WaveScan/internal/model"

// ScanRun describes one batch scan: which strategy ran, over which
// universe, and the aggregate outcome.
type ScanRun struct {
	ID       string // uuid assigned by NewScanRun
	Strategy string
	Symbols  int
	Skipped  int
	Trades   int
	AvgRet   float64
	Note     string
}

// Recorder persists scan history.
type Recorder interface {
	RecordRun(run *ScanRun) error
	RecordTrades(runID, symbol string, trades []*model.Trade) error
	Close() error
}
