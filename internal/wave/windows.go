package wave

import (
	"WaveScan/internal/model"
)

// PartitionWaves pairs major valleys with the following major peak and
// bounds each pair by the next major valley (or the last bar). When the
// major scan produced fewer than two pivots it falls back to the minor
// pivot sequence, and as a last resort fabricates a single window
// spanning all bars; both fallbacks report degraded=true.
func PartitionWaves(n int, major, minor []model.Pivot) ([]model.WaveWindow, bool) {
	if n == 0 {
		return nil, false
	}
	degraded := false
	src := major
	if len(src) < 2 {
		src = minor
		degraded = true
	}
	if len(src) < 2 {
		src = []model.Pivot{
			{Index: 0, Type: model.PivotValley},
			{Index: n - 1, Type: model.PivotPeak},
		}
		degraded = true
	}

	var windows []model.WaveWindow
	for i := 0; i < len(src); i++ {
		if src[i].Type != model.PivotValley {
			continue
		}
		valley := src[i].Index
		peak := -1
		end := n - 1
		for j := i + 1; j < len(src); j++ {
			if src[j].Type == model.PivotPeak && peak < 0 {
				peak = src[j].Index
				continue
			}
			if src[j].Type == model.PivotValley && peak >= 0 {
				end = src[j].Index
				break
			}
		}
		if peak < 0 || peak <= valley || end < peak {
			continue
		}
		windows = append(windows, model.WaveWindow{
			ValleyIndex: valley,
			PeakIndex:   peak,
			EndIndex:    end,
		})
	}
	return windows, degraded
}
