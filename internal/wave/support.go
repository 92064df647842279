package wave

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"WaveScan/internal/model"
)

// FindSupport looks for a recently revisited price band inside a wave
// window. It takes the median close over [valley, valley+lookback]
// (clamped to the window end), forms a symmetric band of half-width
// max(0.0005, median*bandPct) around it, and walks backward from the
// window end to the most recent close inside the band. Returns false
// when no close qualifies or the median is not positive.
func FindSupport(bars []model.Bar, valleyIdx, endIdx, lookback int, bandPct float64) (model.Anchor, bool) {
	if valleyIdx < 0 || endIdx >= len(bars) || valleyIdx > endIdx {
		return model.Anchor{}, false
	}
	sampleEnd := endIdx
	if lookback > 0 && valleyIdx+lookback < sampleEnd {
		sampleEnd = valleyIdx + lookback
	}
	closes := make([]float64, 0, sampleEnd-valleyIdx+1)
	for i := valleyIdx; i <= sampleEnd; i++ {
		if bars[i].Close > 0 {
			closes = append(closes, bars[i].Close)
		}
	}
	if len(closes) == 0 {
		return model.Anchor{}, false
	}
	sort.Float64s(closes)
	median := stat.Quantile(0.5, stat.Empirical, closes, nil)
	if median <= 0 {
		return model.Anchor{}, false
	}
	half := median * bandPct
	if half < MinReversalFloor {
		half = MinReversalFloor
	}
	for i := endIdx; i >= valleyIdx; i-- {
		c := bars[i].Close
		if c >= median-half && c <= median+half {
			return model.Anchor{
				Price: c,
				Index: i,
				Time:  bars[i].Time,
				Kind:  model.AnchorSupport,
			}, true
		}
	}
	return model.Anchor{}, false
}
