package strategy

import (
	"reflect"
	"strings"
	"testing"

	"WaveScan/internal/model"
)

// trendBars builds a full synthetic history: a 15% decline into a
// valley at 85, a rally to 110 with a higher low on the way, a pullback
// onto that higher low, and a breakout that keeps running to the end.
func trendBars() []model.Bar {
	prices := []float64{
		100, 97, 94, 91, 88, 85, // decline into the major valley
		89, 94, 99, 103, // rally leg one
		99, 97, // higher low
		104, 107, 109, 110, // rally leg two into the peak
		104, 98, // pullback onto the higher low
		100, // breakout
		104, 106, 108, // uptrend to the end
	}
	bars := make([]model.Bar, len(prices))
	for i, p := range prices {
		open := prices[0]
		if i > 0 {
			open = prices[i-1]
		}
		hi, lo := open, p
		if p > open {
			hi, lo = p, open
		}
		bars[i] = bar(i, open, hi, lo, p, 1000)
	}
	return bars
}

func TestScan_EndToEnd(t *testing.T) {
	bars := trendBars()
	report, err := Scan(bars, Defaults(), VariantPivotRetest)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(report.Windows) == 0 {
		t.Fatal("expected at least one wave window")
	}
	if len(report.Trades) == 0 {
		t.Fatal("expected at least one trade")
	}
	for i, tr := range report.Trades {
		if !tr.Closed() {
			t.Errorf("trade %d left open", i)
		}
		if tr.StopPrice >= tr.EntryPrice {
			t.Errorf("trade %d stop %.2f not below entry %.2f", i, tr.StopPrice, tr.EntryPrice)
		}
		if tr.EntryIndex <= tr.Anchor.Index {
			t.Errorf("trade %d entry %d not after anchor %d", i, tr.EntryIndex, tr.Anchor.Index)
		}
		if tr.EntryIndex <= tr.Retest.Index {
			t.Errorf("trade %d entry %d not after retest %d", i, tr.EntryIndex, tr.Retest.Index)
		}
		if tr.ExitIndex < tr.EntryIndex {
			t.Errorf("trade %d exit %d before entry %d", i, tr.ExitIndex, tr.EntryIndex)
		}
	}
	if len(report.Markers) == 0 {
		t.Error("expected chart markers")
	}
	if len(report.Overlays) == 0 {
		t.Error("expected wave overlays")
	}
	if !strings.Contains(report.Status, string(VariantPivotRetest)) {
		t.Errorf("status %q missing strategy name", report.Status)
	}
}

func TestScan_Deterministic(t *testing.T) {
	bars := trendBars()
	for _, v := range Variants() {
		a, err := Scan(bars, Defaults(), v)
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		b, err := Scan(bars, Defaults(), v)
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: repeated scans differ", v)
		}
	}
}

func TestScan_UnknownVariant(t *testing.T) {
	if _, err := Scan(trendBars(), Defaults(), Variant("macd_cross")); err == nil {
		t.Fatal("expected an error for an unregistered variant")
	}
}

func TestScan_EmptyInput(t *testing.T) {
	report, err := Scan(nil, Defaults(), VariantPivotRetest)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(report.Trades) != 0 || len(report.Markers) != 0 {
		t.Error("expected an empty report for empty input")
	}
	if report.Status == "" {
		t.Error("expected a status line even for empty input")
	}
}

func TestScan_InputNotMutated(t *testing.T) {
	bars := trendBars()
	snapshot := make([]model.Bar, len(bars))
	copy(snapshot, bars)
	if _, err := Scan(bars, Defaults(), VariantVolumeDoubleLong); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !reflect.DeepEqual(bars, snapshot) {
		t.Error("scan mutated its input bars")
	}
}

func TestVariants_Stable(t *testing.T) {
	vs := Variants()
	if len(vs) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(vs))
	}
	again := Variants()
	if !reflect.DeepEqual(vs, again) {
		t.Error("variant order not stable")
	}
}

func TestParams_NormalizeFloors(t *testing.T) {
	p := Params{
		MinReversalPct:          -5,
		MajorReversalPct:        1, // below the minor threshold
		PivotDepth:              0,
		StopLossPct:             -1,
		NestedConfirmReboundPct: 0.5,
		VolumeFactorFirst:       0.2,
		SupportLookbackBars:     3,
	}
	s := p.normalize()
	if s.minReversal != 0.0005 {
		t.Errorf("minReversal %.5f, want the 0.0005 floor", s.minReversal)
	}
	if s.majorReversal < s.minReversal {
		t.Error("major threshold must not undercut the minor one")
	}
	if s.depth != 1 {
		t.Errorf("depth %d, want 1", s.depth)
	}
	if s.stopFrac != 0.0005 {
		t.Errorf("stopFrac %.5f, want the floor", s.stopFrac)
	}
	if s.rebound != 0.03 {
		t.Errorf("rebound %.4f, want the 3%% floor", s.rebound)
	}
	if s.volFirst != 1 {
		t.Errorf("volFirst %.2f, want 1", s.volFirst)
	}
	if s.supportLookback != 10 {
		t.Errorf("supportLookback %d, want 10", s.supportLookback)
	}
}
