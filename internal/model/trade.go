package model

import "time"

// Exit reasons recorded on closed trades. Exactly one is set per trade.
const (
	ExitStopLoss    = "stop-loss"
	ExitDrawdown    = "drawdown take-profit"
	ExitUpperShadow = "long upper shadow"
	ExitTarget      = "take-profit target"
	ExitEndOfData   = "held to end of data"
)

// Entry reasons, one per strategy variant.
const (
	EntryRetest       = "retest entry"
	EntryDoubleRetest = "double retest entry"
	EntryVolumeLong   = "volume breakout entry"
)

// ConfirmBar marks a confirmation bar of the volume-confirmed variant.
type ConfirmBar struct {
	Index  int
	Time   time.Time
	Price  float64
	Volume float64
}

// Trade is one simulated long position. Entry fields are set when the
// retest is confirmed; exit fields when the position closes. Closed
// trades are immutable and only ever appended to a ledger.
type Trade struct {
	EntryTime   time.Time
	EntryIndex  int
	EntryPrice  float64
	EntryReason string

	StopPrice   float64
	TargetPrice float64 // 0 when no fixed R-multiple target

	Anchor Anchor
	Retest RetestCandidate

	FirstConfirm  *ConfirmBar
	SecondConfirm *ConfirmBar

	ExitTime   time.Time
	ExitIndex  int
	ExitPrice  float64
	ExitReason string
}

// Closed reports whether the position has been exited.
func (t *Trade) Closed() bool {
	return t.ExitReason != ""
}

// ReturnPct is the percentage return of a closed trade.
func (t *Trade) ReturnPct() float64 {
	if t.EntryPrice <= 0 || !t.Closed() {
		return 0
	}
	return (t.ExitPrice - t.EntryPrice) / t.EntryPrice * 100
}
