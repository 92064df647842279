package strategy

import (
	"WaveScan/internal/model"
)

// overshootFloorRatio bounds how far below the anchor a pullback may
// probe before the anchor is abandoned without a retest.
const overshootFloorRatio = 0.95

// retestState enumerates the entry search phases. Each variant walks a
// subset of these states; a scan for one anchor either reaches an entry
// or runs out of window.
type retestState int

const (
	awaitingRetest retestState = iota
	awaitingConfirmation
	awaitingSecondTouch
	awaitingFirstVolume
	awaitingSecondVolume
)

// levels holds the precomputed price lines for one anchor.
type levels struct {
	zone  float64 // upper bound of the retest band
	stop  float64 // initial protective stop
	floor float64 // overshoot abandonment line
}

func anchorLevels(a model.Anchor, s settings) levels {
	return levels{
		zone:  a.Price * (1 + s.tolerance),
		stop:  a.Price * (1 - s.stopFrac),
		floor: a.Price * overshootFloorRatio,
	}
}

// inBand reports whether a low is a valid retest touch: above the stop,
// at or below the entry zone.
func (l levels) inBand(low float64) bool {
	return low > l.stop && low <= l.zone
}

// scanStart is the last bar excluded from the entry search. Support and
// minor-valley anchors can sit after the wave's peak; the search always
// begins after the anchor bar so entries stay strictly causal.
func scanStart(anchor model.Anchor, w model.WaveWindow) int {
	if anchor.Index > w.PeakIndex {
		return anchor.Index
	}
	return w.PeakIndex
}

// scanBaseline searches (peak, window end] for a retest of the anchor
// followed by a single confirmation bar: close above the prior close
// and above the stop, optionally bullish, optionally breaking either
// the retest bar's high or the anchor price. The confirmation bar's
// close becomes the entry.
func scanBaseline(bars []model.Bar, anchor model.Anchor, w model.WaveWindow, s settings) *model.Trade {
	if anchor.Price <= 0 {
		return nil
	}
	lv := anchorLevels(anchor, s)
	state := awaitingRetest
	var cand model.RetestCandidate

	for i := scanStart(anchor, w) + 1; i <= w.EndIndex && i < len(bars); i++ {
		b := bars[i]
		switch state {
		case awaitingRetest:
			if b.Low < lv.floor {
				return nil
			}
			if lv.inBand(b.Low) {
				cand = candidateAt(b, i)
				state = awaitingConfirmation
			}
		case awaitingConfirmation:
			if b.Close <= bars[i-1].Close || b.Close <= lv.stop {
				continue
			}
			if s.confirmBullish && !b.Bullish() {
				continue
			}
			if s.confirmBreak && !(b.Close > cand.High || b.Close >= anchor.Price) {
				continue
			}
			t := &model.Trade{
				EntryTime:   b.Time,
				EntryIndex:  i,
				EntryPrice:  b.Close,
				EntryReason: model.EntryRetest,
				StopPrice:   lv.stop,
				Anchor:      anchor,
				Retest:      cand,
			}
			if s.takeR > 0 {
				t.TargetPrice = b.Close + s.takeR*(b.Close-lv.stop)
			}
			return t
		}
	}
	return nil
}

func candidateAt(b model.Bar, i int) model.RetestCandidate {
	return model.RetestCandidate{
		Index: i,
		Time:  b.Time,
		Price: b.Low,
		High:  b.High,
	}
}
