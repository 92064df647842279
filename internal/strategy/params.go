// Package strategy implements the retest scanners: anchor collection,
// the per-variant entry state machines, trade simulation, and chart
// annotation.
package strategy

import (
	"WaveScan/internal/wave"
)

// Params is the flat strategy configuration. All *_pct values are
// percentages (1.5 means 1.5%); they are converted to fractions and
// floored during normalization, so out-of-range input degrades to the
// nearest sane value instead of failing the scan.
type Params struct {
	MinReversalPct   float64 `yaml:"min_reversal_pct"`
	MajorReversalPct float64 `yaml:"major_reversal_pct"`
	PivotDepth       int     `yaml:"pivot_depth"`

	RetestTolerancePct    float64 `yaml:"retest_tolerance_pct"`
	StopLossPct           float64 `yaml:"stop_loss_pct"`
	TakeProfitR           float64 `yaml:"take_profit_r"`
	DrawdownTakeProfitPct float64 `yaml:"drawdown_take_profit_pct"`
	LongUpperShadowPct    float64 `yaml:"long_upper_shadow_pct"`

	ConfirmBreakLevel    bool `yaml:"confirm_break_level"`
	ConfirmBullishCandle bool `yaml:"confirm_bullish_candle"`

	SupportLookbackBars int     `yaml:"support_lookback_bars"`
	SupportBandPct      float64 `yaml:"support_band_pct"`

	NestedConfirmReboundPct float64 `yaml:"nested_confirm_rebound_pct"`

	VolumeFactorFirst  float64 `yaml:"volume_factor_first"`
	VolumeFactorSecond float64 `yaml:"volume_factor_second"`
	PullbackPct        float64 `yaml:"pullback_pct"`
}

// Defaults mirrors the stock tuning the scanners ship with.
func Defaults() Params {
	return Params{
		MinReversalPct:          5,
		MajorReversalPct:        12,
		PivotDepth:              1,
		RetestTolerancePct:      1.5,
		StopLossPct:             2,
		TakeProfitR:             0,
		DrawdownTakeProfitPct:   7,
		LongUpperShadowPct:      3,
		ConfirmBreakLevel:       true,
		ConfirmBullishCandle:    true,
		SupportLookbackBars:     180,
		SupportBandPct:          1,
		NestedConfirmReboundPct: 3,
		VolumeFactorFirst:       1.8,
		VolumeFactorSecond:      1.8,
		PullbackPct:             1,
	}
}

// settings is the normalized form of Params: fractions instead of
// percentages, with floors applied. All scan code reads settings only.
type settings struct {
	minReversal   float64
	majorReversal float64
	depth         int

	tolerance float64
	stopFrac  float64
	takeR     float64
	drawdown  float64
	shadow    float64

	confirmBreak   bool
	confirmBullish bool

	supportLookback int
	supportBand     float64

	rebound float64

	volFirst  float64
	volSecond float64
	pullback  float64
}

func (p Params) normalize() settings {
	s := settings{
		minReversal:     frac(p.MinReversalPct, wave.MinReversalFloor),
		depth:           p.PivotDepth,
		tolerance:       frac(p.RetestTolerancePct, 0),
		stopFrac:        frac(p.StopLossPct, wave.MinReversalFloor),
		takeR:           p.TakeProfitR,
		drawdown:        frac(p.DrawdownTakeProfitPct, 0),
		shadow:          frac(p.LongUpperShadowPct, 0),
		confirmBreak:    p.ConfirmBreakLevel,
		confirmBullish:  p.ConfirmBullishCandle,
		supportLookback: p.SupportLookbackBars,
		supportBand:     frac(p.SupportBandPct, wave.MinReversalFloor),
		rebound:         frac(p.NestedConfirmReboundPct, 0.03),
		volFirst:        p.VolumeFactorFirst,
		volSecond:       p.VolumeFactorSecond,
		pullback:        frac(p.PullbackPct, 0),
	}
	s.majorReversal = frac(p.MajorReversalPct, s.minReversal)
	if s.depth < 1 {
		s.depth = 1
	}
	if s.takeR < 0 {
		s.takeR = 0
	}
	if s.supportLookback < 10 {
		s.supportLookback = 10
	}
	if s.volFirst < 1 {
		s.volFirst = 1
	}
	if s.volSecond < 1 {
		s.volSecond = 1
	}
	return s
}

// frac converts a percentage to a fraction, flooring the result.
func frac(pct, floor float64) float64 {
	f := pct / 100
	if f < floor {
		return floor
	}
	return f
}
