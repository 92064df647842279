package model

import "time"

// PivotType distinguishes valley pivots from peak pivots.
type PivotType string

const (
	PivotValley PivotType = "valley"
	PivotPeak   PivotType = "peak"
)

// Opposite returns the other pivot type.
func (t PivotType) Opposite() PivotType {
	if t == PivotValley {
		return PivotPeak
	}
	return PivotValley
}

// Pivot is a confirmed local price extreme. A detected pivot sequence is
// ordered by index and strictly alternates between valleys and peaks.
type Pivot struct {
	Index int
	Type  PivotType
}

// WaveWindow bounds one major upswing and its aftermath: a major valley,
// the following major peak, and the window end (the next major valley, or
// the last bar when none exists).
type WaveWindow struct {
	ValleyIndex int
	PeakIndex   int
	EndIndex    int
}

// AnchorKind names the origin of a retest anchor.
type AnchorKind string

const (
	AnchorValley      AnchorKind = "valley"
	AnchorMinorValley AnchorKind = "minor_valley"
	AnchorSupport     AnchorKind = "support"
)

// Anchor is a reference price level a retest is measured against.
type Anchor struct {
	Price float64
	Index int
	Time  time.Time
	Kind  AnchorKind
}

// RetestCandidate records the bar whose low first entered the tolerance
// band above an anchor.
type RetestCandidate struct {
	Index int
	Time  time.Time
	Price float64 // the bar's low
	High  float64
}
