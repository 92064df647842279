package strategy

import (
	"fmt"
	"sort"

	"WaveScan/internal/model"
	"WaveScan/internal/wave"
)

// Variant names one of the scanner strategies.
type Variant string

const (
	VariantPivotRetest      Variant = "pivot_retest"
	VariantDoubleRetest     Variant = "double_retest"
	VariantVolumeDoubleLong Variant = "volume_double_long"
)

type entryFunc func(bars []model.Bar, anchor model.Anchor, w model.WaveWindow, s settings) *model.Trade

var variants = map[Variant]entryFunc{
	VariantPivotRetest:      scanBaseline,
	VariantDoubleRetest:     scanDoubleRetest,
	VariantVolumeDoubleLong: scanVolumeLong,
}

// Variants lists the registered variant names in stable order.
func Variants() []Variant {
	out := make([]Variant, 0, len(variants))
	for v := range variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Scan runs one strategy variant over a symbol's bars and returns the
// full report: pivots, windows, simulated trades, and the chart
// annotations derived from them. The input bars are never mutated and
// the same input always produces the same report. An unknown variant is
// the only error condition; degenerate inputs produce an empty report.
func Scan(bars []model.Bar, p Params, v Variant) (*model.ScanReport, error) {
	fn, ok := variants[v]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown variant %q", v)
	}
	s := p.normalize()

	minor := wave.DetectPivots(bars, s.minReversal, s.depth)
	major := wave.MajorPivots(bars, s.majorReversal, s.depth)
	windows, degraded := wave.PartitionWaves(len(bars), major, minor)

	var trades []*model.Trade
	for _, w := range windows {
		for _, a := range collectAnchors(bars, w, minor, s) {
			t := fn(bars, a, w, s)
			if t == nil {
				continue
			}
			simulate(bars, t, s)
			trades = append(trades, t)
		}
	}

	report := &model.ScanReport{
		Strategy:    string(v),
		Pivots:      minor,
		MajorPivots: major,
		Windows:     windows,
		Trades:      trades,
		Degraded:    degraded,
	}
	annotate(bars, report)
	return report, nil
}
