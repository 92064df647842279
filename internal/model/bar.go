package model

import "time"

// Bar represents a single daily OHLCV candlestick.
type Bar struct {
	Index  int
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bullish reports whether the bar closed above its open.
func (b Bar) Bullish() bool {
	return b.Close > b.Open
}

// BodyTop returns the upper edge of the candle body.
func (b Bar) BodyTop() float64 {
	if b.Open > b.Close {
		return b.Open
	}
	return b.Close
}

// BodyBottom returns the lower edge of the candle body.
func (b Bar) BodyBottom() float64 {
	if b.Open < b.Close && b.Open > 0 {
		return b.Open
	}
	return b.Close
}
