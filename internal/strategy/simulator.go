package strategy

import (
	"WaveScan/internal/model"
)

// simulate manages an open position bar by bar until an exit triggers
// or the data ends. Checks run in a fixed priority per bar: stop-loss,
// drawdown take-profit, long upper shadow, fixed target. The first hit
// wins and later checks on the same bar are skipped.
func simulate(bars []model.Bar, t *model.Trade, s settings) {
	high := t.EntryPrice
	for i := t.EntryIndex + 1; i < len(bars); i++ {
		b := bars[i]

		if b.Low <= t.StopPrice {
			closeTrade(t, b, i, t.StopPrice, model.ExitStopLoss)
			return
		}
		if s.drawdown > 0 {
			if b.High > high {
				high = b.High
			}
			if high > 0 && b.Close <= high*(1-s.drawdown) {
				closeTrade(t, b, i, b.Close, model.ExitDrawdown)
				return
			}
		}
		if s.shadow > 0 {
			bodyTop := b.BodyTop()
			shadow := b.High - bodyTop
			if shadow < 0 {
				shadow = 0
			}
			if bodyTop > 0 && shadow/bodyTop >= s.shadow {
				closeTrade(t, b, i, b.Close, model.ExitUpperShadow)
				return
			}
		}
		if t.TargetPrice > 0 && b.High >= t.TargetPrice {
			closeTrade(t, b, i, t.TargetPrice, model.ExitTarget)
			return
		}
	}

	last := bars[len(bars)-1]
	exit := last.Close
	if exit <= 0 {
		exit = t.EntryPrice
	}
	closeTrade(t, last, len(bars)-1, exit, model.ExitEndOfData)
}

func closeTrade(t *model.Trade, b model.Bar, idx int, price float64, reason string) {
	t.ExitTime = b.Time
	t.ExitIndex = idx
	t.ExitPrice = price
	t.ExitReason = reason
}
