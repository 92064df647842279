package scanner

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"WaveScan/internal/model"
)

// Filter screens symbols out of a batch scan after their bars load.
// Zero values disable the corresponding check.
type Filter struct {
	MinBars      int     `yaml:"min_bars"`
	MinAvgVolume float64 `yaml:"min_avg_volume"`
	MinPrice     float64 `yaml:"min_price"`
	MaxPrice     float64 `yaml:"max_price"`
}

// check returns a human-readable skip reason, or "" when the symbol
// passes.
func (f Filter) check(bars []model.Bar) string {
	if f.MinBars > 0 && len(bars) < f.MinBars {
		return fmt.Sprintf("only %d bars, need %d", len(bars), f.MinBars)
	}
	if len(bars) == 0 {
		return ""
	}
	if f.MinAvgVolume > 0 {
		vols := make([]float64, len(bars))
		for i, b := range bars {
			vols[i] = b.Volume
		}
		if avg := stat.Mean(vols, nil); avg < f.MinAvgVolume {
			return fmt.Sprintf("avg volume %.0f below %.0f", avg, f.MinAvgVolume)
		}
	}
	last := bars[len(bars)-1].Close
	if f.MinPrice > 0 && last < f.MinPrice {
		return fmt.Sprintf("last close %.2f below %.2f", last, f.MinPrice)
	}
	if f.MaxPrice > 0 && last > f.MaxPrice {
		return fmt.Sprintf("last close %.2f above %.2f", last, f.MaxPrice)
	}
	return ""
}
