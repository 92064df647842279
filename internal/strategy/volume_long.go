package strategy

import (
	"WaveScan/internal/model"
)

// volumeStopRatio tightens the stop to just under the retest low once a
// volume entry triggers.
const volumeStopRatio = 0.98

// scanVolumeLong requires two above-minimum-volume bullish bars after
// the retest: a first confirmation, then at least one bar of pullback
// or consolidation, then a second confirmation that opens the trade.
// The reference volume is the running minimum observed after the retest
// bar, so "times the minimum" tracks the quietest bar of the base being
// built. The pullback gate deliberately also passes on two elapsed bars
// with no price pullback at all.
func scanVolumeLong(bars []model.Bar, anchor model.Anchor, w model.WaveWindow, s settings) *model.Trade {
	if anchor.Price <= 0 {
		return nil
	}
	lv := anchorLevels(anchor, s)
	state := awaitingRetest
	var (
		cand         model.RetestCandidate
		first        model.ConfirmBar
		pullbackSeen bool
	)

	for i := scanStart(anchor, w) + 1; i <= w.EndIndex && i < len(bars); i++ {
		b := bars[i]
		switch state {
		case awaitingRetest:
			if b.Low < lv.floor {
				return nil
			}
			if lv.inBand(b.Low) {
				cand = candidateAt(b, i)
				state = awaitingFirstVolume
			}
		case awaitingFirstVolume:
			if s.confirmBullish && !b.Bullish() {
				continue
			}
			base := postRetestMinVolume(bars, cand.Index, i)
			if base > 0 && b.Volume < base*s.volFirst {
				continue
			}
			if b.Close <= lv.stop || b.Close <= cand.Price {
				continue
			}
			first = model.ConfirmBar{Index: i, Time: b.Time, Price: b.Close, Volume: b.Volume}
			pullbackSeen = false
			state = awaitingSecondVolume
		case awaitingSecondVolume:
			// Giving back the retest low invalidates the base.
			if b.Low < cand.Price {
				return nil
			}
			if !pullbackSeen {
				fb := bars[first.Index]
				pullbackSeen = b.Close < fb.Close*(1-s.pullback) ||
					b.Low < fb.Low*(1-s.pullback) ||
					i-first.Index >= 2
				continue
			}
			if s.confirmBullish && !b.Bullish() {
				continue
			}
			base := postRetestMinVolume(bars, cand.Index, i)
			if base > 0 && b.Volume < base*s.volSecond {
				continue
			}
			if b.Close <= lv.stop || b.Close <= cand.Price {
				continue
			}
			second := model.ConfirmBar{Index: i, Time: b.Time, Price: b.Close, Volume: b.Volume}
			return &model.Trade{
				EntryTime:     b.Time,
				EntryIndex:    i,
				EntryPrice:    b.Close,
				EntryReason:   model.EntryVolumeLong,
				StopPrice:     cand.Price * volumeStopRatio,
				Anchor:        anchor,
				Retest:        cand,
				FirstConfirm:  &first,
				SecondConfirm: &second,
			}
		}
	}
	return nil
}

// postRetestMinVolume is the minimum volume over (retestIdx, idx],
// current bar included.
func postRetestMinVolume(bars []model.Bar, retestIdx, idx int) float64 {
	min := 0.0
	for i := retestIdx + 1; i <= idx && i < len(bars); i++ {
		if i == retestIdx+1 || bars[i].Volume < min {
			min = bars[i].Volume
		}
	}
	return min
}
