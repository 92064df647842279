package strategy

import (
	"testing"

	"WaveScan/internal/model"
)

// doubleRetestBars: anchor 100, rally to bar 5, first touch at bar 6,
// second touch with a 3.5% rebound close at bar 8.
func doubleRetestBars() []model.Bar {
	return []model.Bar{
		bar(0, 102, 103, 101, 102, 1000),
		bar(1, 102, 102, 100.5, 101, 1000),
		bar(2, 101, 101, 100, 100.5, 1000),
		bar(3, 101, 106, 101, 105, 1500),
		bar(4, 105, 111, 105, 110, 1600),
		bar(5, 110, 115, 110, 115, 1700),
		bar(6, 101, 102, 100.5, 100.8, 900),
		bar(7, 101, 104, 101.6, 103, 1000),
		bar(8, 102, 105, 101, 104, 1800),
		bar(9, 104, 106, 103, 105, 1100),
	}
}

func TestScanDoubleRetest_SecondTouchEnters(t *testing.T) {
	bars := doubleRetestBars()
	w := model.WaveWindow{ValleyIndex: 2, PeakIndex: 5, EndIndex: 9}
	s := Defaults().normalize()

	trade := scanDoubleRetest(bars, testAnchor(100, 2), w, s)
	if trade == nil {
		t.Fatal("expected a trade from the double retest")
	}
	if trade.EntryIndex != 8 {
		t.Errorf("entry index %d, want the second touch at 8", trade.EntryIndex)
	}
	if trade.EntryPrice != 104 {
		t.Errorf("entry price %.2f, want 104", trade.EntryPrice)
	}
	if trade.Retest.Index != 6 {
		t.Errorf("recorded retest %d, want the first touch at 6", trade.Retest.Index)
	}
	if trade.StopPrice != 98 {
		t.Errorf("stop %.2f, want 98", trade.StopPrice)
	}
}

func TestScanDoubleRetest_ReboundTooSmall(t *testing.T) {
	bars := doubleRetestBars()
	// Second touch closes only 1% above the first touch's low.
	bars[8] = bar(8, 101, 102, 101, 101.5, 1800)
	w := model.WaveWindow{ValleyIndex: 2, PeakIndex: 5, EndIndex: 9}
	s := Defaults().normalize()

	if trade := scanDoubleRetest(bars, testAnchor(100, 2), w, s); trade != nil {
		t.Errorf("expected no trade on a weak rebound, got entry at %d", trade.EntryIndex)
	}
}

func TestScanDoubleRetest_SingleTouchNoTrade(t *testing.T) {
	bars := cleanRetestBars()
	w := model.WaveWindow{ValleyIndex: 2, PeakIndex: 5, EndIndex: 9}
	s := Defaults().normalize()

	if trade := scanDoubleRetest(bars, testAnchor(100, 2), w, s); trade != nil {
		t.Errorf("expected no trade without a second touch, got entry at %d", trade.EntryIndex)
	}
}

func TestScanDoubleRetest_OvershootAbandons(t *testing.T) {
	bars := doubleRetestBars()
	bars[6] = bar(6, 101, 102, 94.9, 100.8, 900)
	w := model.WaveWindow{ValleyIndex: 2, PeakIndex: 5, EndIndex: 9}
	s := Defaults().normalize()

	if trade := scanDoubleRetest(bars, testAnchor(100, 2), w, s); trade != nil {
		t.Error("expected the anchor to be abandoned on overshoot")
	}
}
