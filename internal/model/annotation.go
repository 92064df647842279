package model

// Marker positions on a candlestick chart.
const (
	PositionAboveBar = "aboveBar"
	PositionBelowBar = "belowBar"
	PositionInBar    = "inBar"
)

// Marker shapes.
const (
	ShapeArrowUp   = "arrowUp"
	ShapeArrowDown = "arrowDown"
	ShapeCircle    = "circle"
	ShapeTriangle  = "triangle"
)

// Overlay kinds.
const (
	OverlayRetestLink = "retest_link"
	OverlayMajorWave  = "major_wave"
)

// Line styles for overlays.
const (
	LineSolid  = 0
	LineDashed = 2
)

// Marker is a single chart marker bound to a bar by its date string.
type Marker struct {
	ID       string  `json:"id"`
	Time     string  `json:"time"`
	Position string  `json:"position"`
	Color    string  `json:"color"`
	Shape    string  `json:"shape"`
	Text     string  `json:"text"`
	Price    float64 `json:"price,omitempty"`
}

// Overlay is a line segment drawn between two bars.
type Overlay struct {
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	StartPrice float64 `json:"start_price"`
	EndPrice   float64 `json:"end_price"`
	Direction  string  `json:"direction"`
	Kind       string  `json:"kind"`
	Color      string  `json:"color"`
	LineWidth  int     `json:"line_width"`
	LineStyle  int     `json:"line_style"`
	Label      string  `json:"label,omitempty"`
}

// ScanReport is the complete result of running one strategy variant
// over one symbol's bars.
type ScanReport struct {
	Strategy    string
	Markers     []Marker
	Overlays    []Overlay
	Status      string
	Pivots      []Pivot
	MajorPivots []Pivot
	Windows     []WaveWindow
	Trades      []*Trade
	Degraded    bool
}
