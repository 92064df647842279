// Package wave detects zigzag pivots in candlestick data and partitions
// them into valley-to-peak analysis windows.
package wave

import (
	"WaveScan/internal/model"
)

// MinReversalFloor is the smallest usable reversal threshold. Ratios
// below it would flag noise on every bar.
const MinReversalFloor = 0.0005

// DetectPivots runs a zigzag scan over the bars and returns the
// alternating valley/peak sequence in index order. minReversal is a
// fractional move (0.05 = 5%) and is floored at MinReversalFloor;
// depth is the minimum bar distance between recorded pivots, floored
// at 1. Fewer than max(3, depth+1) bars yields no pivots.
func DetectPivots(bars []model.Bar, minReversal float64, depth int) []model.Pivot {
	if depth < 1 {
		depth = 1
	}
	if minReversal < MinReversalFloor {
		minReversal = MinReversalFloor
	}
	n := len(bars)
	min := 3
	if depth+1 > min {
		min = depth + 1
	}
	if n < min {
		return nil
	}

	var pivots []model.Pivot

	add := func(idx int, kind model.PivotType) {
		if len(pivots) == 0 {
			pivots = append(pivots, model.Pivot{Index: idx, Type: kind})
			return
		}
		last := &pivots[len(pivots)-1]
		better := (kind == model.PivotPeak && bars[idx].High > bars[last.Index].High) ||
			(kind == model.PivotValley && bars[idx].Low < bars[last.Index].Low)
		if idx-last.Index < depth {
			if better {
				*last = model.Pivot{Index: idx, Type: kind}
			}
			return
		}
		if last.Type == kind {
			if better {
				*last = model.Pivot{Index: idx, Type: kind}
			}
			return
		}
		pivots = append(pivots, model.Pivot{Index: idx, Type: kind})
	}

	direction := 0
	lastPivotIdx := 0
	lastPivotPrice := (bars[0].High + bars[0].Low) / 2
	extremeIdx := 0
	extremePrice := lastPivotPrice

	for idx := 1; idx < n; idx++ {
		hi := bars[idx].High
		lo := bars[idx].Low
		if direction == 0 {
			var upMove, downMove float64
			if lastPivotPrice > 0 {
				upMove = (hi - lastPivotPrice) / lastPivotPrice
				downMove = (lastPivotPrice - lo) / lastPivotPrice
			}
			switch {
			case upMove >= minReversal:
				add(lastPivotIdx, model.PivotValley)
				direction = 1
				extremeIdx = idx
				extremePrice = hi
			case downMove >= minReversal:
				add(lastPivotIdx, model.PivotPeak)
				direction = -1
				extremeIdx = idx
				extremePrice = lo
			default:
				if hi > extremePrice {
					extremePrice = hi
					extremeIdx = idx
				}
				if lo < extremePrice {
					extremePrice = lo
					extremeIdx = idx
				}
			}
			continue
		}
		if direction == 1 {
			if hi > extremePrice {
				extremePrice = hi
				extremeIdx = idx
			}
			var drawdown float64
			if extremePrice > 0 {
				drawdown = (extremePrice - lo) / extremePrice
			}
			if drawdown >= minReversal {
				add(extremeIdx, model.PivotPeak)
				direction = -1
				lastPivotIdx = extremeIdx
				lastPivotPrice = extremePrice
				extremeIdx = idx
				extremePrice = lo
				continue
			}
		}
		if direction == -1 {
			if lo < extremePrice {
				extremePrice = lo
				extremeIdx = idx
			}
			var rebound float64
			if extremePrice > 0 {
				rebound = (hi - extremePrice) / extremePrice
			}
			if rebound >= minReversal {
				add(extremeIdx, model.PivotValley)
				direction = 1
				lastPivotIdx = extremeIdx
				lastPivotPrice = extremePrice
				extremeIdx = idx
				extremePrice = hi
			}
		}
	}

	switch direction {
	case 1:
		add(extremeIdx, model.PivotPeak)
	case -1:
		add(extremeIdx, model.PivotValley)
	}
	if len(pivots) > 0 {
		last := pivots[len(pivots)-1]
		if last.Index != n-1 {
			pivots = append(pivots, model.Pivot{Index: n - 1, Type: last.Type.Opposite()})
		}
	}
	return mergeSameType(pivots, bars)
}

// mergeSameType collapses adjacent same-type pivots, keeping the more
// extreme one. In-place replacement can leave two peaks or two valleys
// back to back when a late bar supersedes a nearby pivot of the other
// type; the merged sequence strictly alternates again.
func mergeSameType(pivots []model.Pivot, bars []model.Bar) []model.Pivot {
	if len(pivots) < 2 {
		return pivots
	}
	out := pivots[:1]
	for _, p := range pivots[1:] {
		last := &out[len(out)-1]
		if p.Type != last.Type {
			out = append(out, p)
			continue
		}
		if p.Type == model.PivotPeak && bars[p.Index].High > bars[last.Index].High {
			*last = p
		} else if p.Type == model.PivotValley && bars[p.Index].Low < bars[last.Index].Low {
			*last = p
		}
	}
	return out
}

// MajorPivots rescans the bars with a coarser reversal threshold. The
// result is the subset of swings large enough to bound trade windows.
func MajorPivots(bars []model.Bar, majorReversal float64, depth int) []model.Pivot {
	return DetectPivots(bars, majorReversal, depth)
}
