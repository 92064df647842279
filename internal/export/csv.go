// Package export writes scan results to CSV for spreadsheet review.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"WaveScan/internal/model"
)

var header = []string{
	"symbol", "anchor_kind", "anchor_price",
	"entry_date", "entry_price", "entry_reason", "stop_price",
	"exit_date", "exit_price", "exit_reason", "return_pct",
}

const dateFmt = "2006-01-02"

// WriteTrades streams one row per trade, preceded by a header row.
func WriteTrades(w io.Writer, trades map[string][]*model.Trade, order []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, symbol := range order {
		for _, t := range trades[symbol] {
			row := []string{
				symbol,
				string(t.Anchor.Kind),
				f(t.Anchor.Price),
				t.EntryTime.Format(dateFmt),
				f(t.EntryPrice),
				t.EntryReason,
				f(t.StopPrice),
				t.ExitTime.Format(dateFmt),
				f(t.ExitPrice),
				t.ExitReason,
				f(t.ReturnPct()),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write trade row for %s: %w", symbol, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
