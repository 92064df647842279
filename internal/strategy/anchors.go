package strategy

import (
	"WaveScan/internal/model"
	"WaveScan/internal/wave"
)

// collectAnchors gathers the retest anchors for one wave window, in
// evaluation order: the major valley itself, the most recent minor
// valley inside the window, and the support zone close. Anchors landing
// on an index already taken are dropped so the same level is never
// scanned twice.
func collectAnchors(bars []model.Bar, w model.WaveWindow, minor []model.Pivot, s settings) []model.Anchor {
	var anchors []model.Anchor
	seen := map[int]bool{}

	add := func(a model.Anchor) {
		if a.Price <= 0 || seen[a.Index] {
			return
		}
		seen[a.Index] = true
		anchors = append(anchors, a)
	}

	vb := bars[w.ValleyIndex]
	price := vb.Low
	if price <= 0 {
		price = vb.Close
	}
	add(model.Anchor{Price: price, Index: w.ValleyIndex, Time: vb.Time, Kind: model.AnchorValley})

	// Latest minor valley strictly after the major valley, at or
	// before the window end.
	for i := len(minor) - 1; i >= 0; i-- {
		p := minor[i]
		if p.Type != model.PivotValley || p.Index <= w.ValleyIndex || p.Index > w.EndIndex {
			continue
		}
		mb := bars[p.Index]
		mp := mb.Low
		if mp <= 0 {
			mp = mb.Close
		}
		add(model.Anchor{Price: mp, Index: p.Index, Time: mb.Time, Kind: model.AnchorMinorValley})
		break
	}

	if sup, ok := wave.FindSupport(bars, w.ValleyIndex, w.EndIndex, s.supportLookback, s.supportBand); ok {
		add(sup)
	}
	return anchors
}
