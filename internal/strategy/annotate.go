package strategy

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"WaveScan/internal/model"
)

const dateFmt = "2006-01-02"

// Marker and overlay palette.
const (
	colorValley    = "#22c55e"
	colorPeak      = "#ef4444"
	colorAnchor    = "#38bdf8"
	colorRetest    = "#94a3b8"
	colorFirstVol  = "#f59e0b"
	colorSecondVol = "#fb923c"
	colorEntry     = "#0ea5e9"
	colorExit      = "#f97316"
	colorWave      = "#f59e0b"
)

// annotate fills the report's markers, overlays and status line from
// the already-computed pivots, windows and trades. Pure projection; it
// reads bars but changes nothing outside the report.
func annotate(bars []model.Bar, r *model.ScanReport) {
	if len(bars) == 0 {
		r.Status = "no bars to scan"
		return
	}
	r.Markers = append(r.Markers, pivotMarkers(bars, r.Pivots)...)
	for i, w := range r.Windows {
		r.Overlays = append(r.Overlays, waveOverlays(bars, w, i)...)
	}
	for i, t := range r.Trades {
		r.Markers = append(r.Markers, tradeMarkers(t, i)...)
		r.Overlays = append(r.Overlays, retestLink(t))
	}
	r.Status = statusLine(bars, r)
}

func pivotMarkers(bars []model.Bar, pivots []model.Pivot) []model.Marker {
	markers := make([]model.Marker, 0, len(pivots))
	for i, p := range pivots {
		b := bars[p.Index]
		m := model.Marker{
			ID:   fmt.Sprintf("pivot_%d", i),
			Time: b.Time.Format(dateFmt),
		}
		if p.Type == model.PivotValley {
			price := b.Low
			if price <= 0 {
				price = b.Close
			}
			m.Position = model.PositionBelowBar
			m.Color = colorValley
			m.Shape = model.ShapeArrowUp
			m.Text = fmt.Sprintf("valley %.2f", price)
			m.Price = price
		} else {
			price := b.High
			if price <= 0 {
				price = b.Close
			}
			m.Position = model.PositionAboveBar
			m.Color = colorPeak
			m.Shape = model.ShapeArrowDown
			m.Text = fmt.Sprintf("peak %.2f", price)
			m.Price = price
		}
		markers = append(markers, m)
	}
	return markers
}

func tradeMarkers(t *model.Trade, i int) []model.Marker {
	prefix := fmt.Sprintf("trade_%d", i)
	markers := []model.Marker{
		{
			ID:       prefix + "_anchor",
			Time:     t.Anchor.Time.Format(dateFmt),
			Position: model.PositionBelowBar,
			Color:    colorAnchor,
			Shape:    model.ShapeCircle,
			Text:     fmt.Sprintf("anchor(%s) %.2f", t.Anchor.Kind, t.Anchor.Price),
			Price:    t.Anchor.Price,
		},
		{
			ID:       prefix + "_retest",
			Time:     t.Retest.Time.Format(dateFmt),
			Position: model.PositionInBar,
			Color:    colorRetest,
			Shape:    model.ShapeCircle,
			Text:     fmt.Sprintf("retest %.2f", t.Retest.Price),
			Price:    t.Retest.Price,
		},
	}
	if t.FirstConfirm != nil {
		markers = append(markers, confirmMarker(prefix+"_vol1", colorFirstVol, "vol1", t.FirstConfirm))
	}
	if t.SecondConfirm != nil {
		markers = append(markers, confirmMarker(prefix+"_vol2", colorSecondVol, "vol2", t.SecondConfirm))
	}
	markers = append(markers,
		model.Marker{
			ID:       prefix + "_entry",
			Time:     t.EntryTime.Format(dateFmt),
			Position: model.PositionBelowBar,
			Color:    colorEntry,
			Shape:    model.ShapeTriangle,
			Text:     fmt.Sprintf("%s %.2f", t.EntryReason, t.EntryPrice),
			Price:    t.EntryPrice,
		},
	)
	if t.Closed() {
		markers = append(markers, model.Marker{
			ID:       prefix + "_exit",
			Time:     t.ExitTime.Format(dateFmt),
			Position: model.PositionAboveBar,
			Color:    colorExit,
			Shape:    model.ShapeTriangle,
			Text:     fmt.Sprintf("%s %.2f (%+.1f%%)", t.ExitReason, t.ExitPrice, t.ReturnPct()),
			Price:    t.ExitPrice,
		})
	}
	return markers
}

func confirmMarker(id, color, label string, c *model.ConfirmBar) model.Marker {
	return model.Marker{
		ID:       id,
		Time:     c.Time.Format(dateFmt),
		Position: model.PositionAboveBar,
		Color:    color,
		Shape:    model.ShapeTriangle,
		Text:     fmt.Sprintf("%s %.2f vol %s", label, c.Price, humanize.SIWithDigits(c.Volume, 1, "")),
		Price:    c.Price,
	}
}

// waveOverlays draws a window as two segments: the upswing from the
// valley body to the peak body, then the decline to the window end.
func waveOverlays(bars []model.Bar, w model.WaveWindow, i int) []model.Overlay {
	valley := bars[w.ValleyIndex]
	peak := bars[w.PeakIndex]
	end := bars[w.EndIndex]
	label := fmt.Sprintf("wave %d", i+1)
	up := model.Overlay{
		StartTime:  valley.Time.Format(dateFmt),
		EndTime:    peak.Time.Format(dateFmt),
		StartPrice: valley.BodyBottom(),
		EndPrice:   peak.BodyTop(),
		Direction:  "up",
		Kind:       model.OverlayMajorWave,
		Color:      colorWave,
		LineWidth:  2,
		LineStyle:  model.LineSolid,
		Label:      label,
	}
	down := model.Overlay{
		StartTime:  peak.Time.Format(dateFmt),
		EndTime:    end.Time.Format(dateFmt),
		StartPrice: peak.BodyTop(),
		EndPrice:   end.BodyBottom(),
		Direction:  "down",
		Kind:       model.OverlayMajorWave,
		Color:      colorWave,
		LineWidth:  2,
		LineStyle:  model.LineSolid,
		Label:      label,
	}
	return []model.Overlay{up, down}
}

func retestLink(t *model.Trade) model.Overlay {
	return model.Overlay{
		StartTime:  t.Anchor.Time.Format(dateFmt),
		EndTime:    t.Retest.Time.Format(dateFmt),
		StartPrice: t.Anchor.Price,
		EndPrice:   t.Retest.Price,
		Direction:  "flat",
		Kind:       model.OverlayRetestLink,
		Color:      colorRetest,
		LineWidth:  1,
		LineStyle:  model.LineDashed,
	}
}

func statusLine(bars []model.Bar, r *model.ScanReport) string {
	first := bars[0].Time.Format(dateFmt)
	last := bars[len(bars)-1].Time.Format(dateFmt)
	s := fmt.Sprintf("%s: %s bars (%s to %s), %d pivots, %d windows, %d trades",
		r.Strategy, humanize.Comma(int64(len(bars))), first, last,
		len(r.Pivots), len(r.Windows), len(r.Trades))
	if r.Degraded {
		s += ", degraded pivot fallback"
	}
	return s
}
