package strategy

import (
	"WaveScan/internal/model"
)

// scanDoubleRetest requires two touches of the retest band. The second
// touch must close at least the configured rebound fraction above the
// first touch's low, and optionally be a bullish candle; its close
// becomes the entry.
func scanDoubleRetest(bars []model.Bar, anchor model.Anchor, w model.WaveWindow, s settings) *model.Trade {
	if anchor.Price <= 0 {
		return nil
	}
	lv := anchorLevels(anchor, s)
	state := awaitingRetest
	var first model.RetestCandidate

	for i := scanStart(anchor, w) + 1; i <= w.EndIndex && i < len(bars); i++ {
		b := bars[i]
		switch state {
		case awaitingRetest:
			if b.Low < lv.floor {
				return nil
			}
			if lv.inBand(b.Low) {
				first = candidateAt(b, i)
				state = awaitingSecondTouch
			}
		case awaitingSecondTouch:
			if !lv.inBand(b.Low) {
				continue
			}
			if first.Price <= 0 || (b.Close-first.Price)/first.Price < s.rebound {
				continue
			}
			if s.confirmBullish && !b.Bullish() {
				continue
			}
			return &model.Trade{
				EntryTime:   b.Time,
				EntryIndex:  i,
				EntryPrice:  b.Close,
				EntryReason: model.EntryDoubleRetest,
				StopPrice:   lv.stop,
				Anchor:      anchor,
				Retest:      first,
			}
		}
	}
	return nil
}
