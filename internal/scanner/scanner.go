// Package scanner orchestrates batch scans: it fans a symbol universe
// out over a worker pool, applies the universe filter, runs the
// strategy engine per symbol, and collects results in universe order.
// Cancellation lives here, not in the engine: once the context is done
// the remaining symbols are simply not scanned.
package scanner

import (
	"context"
	"log"
	"sync"

	"gonum.org/v1/gonum/stat"

	"WaveScan/internal/model"
	"WaveScan/internal/strategy"
)

// Loader supplies candle history for one symbol.
type Loader interface {
	LoadBars(symbol string) ([]model.Bar, error)
}

// Result is the outcome for one symbol. Exactly one of Report, Skipped
// or Err is meaningful.
type Result struct {
	Symbol  string
	Report  *model.ScanReport
	Skipped string
	Err     error
}

// Scanner runs one strategy variant over a symbol universe.
type Scanner struct {
	loader  Loader
	params  strategy.Params
	variant strategy.Variant
	filter  Filter
	workers int
}

// New builds a Scanner. workers below 1 is treated as 1.
func New(loader Loader, params strategy.Params, variant strategy.Variant, filter Filter, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		loader:  loader,
		params:  params,
		variant: variant,
		filter:  filter,
		workers: workers,
	}
}

// Run scans every symbol and returns one Result per symbol, in the
// order given. Symbols not reached before ctx is done carry ctx's
// error.
func (s *Scanner) Run(ctx context.Context, symbols []string) []Result {
	results := make([]Result, len(symbols))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.scanOne(ctx, symbols[i])
			}
		}()
	}

feed:
	for i := range symbols {
		select {
		case <-ctx.Done():
			// workers only ever hold indices below i
			for j := i; j < len(symbols); j++ {
				results[j] = Result{Symbol: symbols[j], Err: ctx.Err()}
			}
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func (s *Scanner) scanOne(ctx context.Context, symbol string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Symbol: symbol, Err: err}
	}
	bars, err := s.loader.LoadBars(symbol)
	if err != nil {
		log.Printf("[WARN] %s: %v", symbol, err)
		return Result{Symbol: symbol, Err: err}
	}
	if reason := s.filter.check(bars); reason != "" {
		return Result{Symbol: symbol, Skipped: reason}
	}
	report, err := strategy.Scan(bars, s.params, s.variant)
	if err != nil {
		return Result{Symbol: symbol, Err: err}
	}
	return Result{Symbol: symbol, Report: report}
}

// Summary aggregates a batch run.
type Summary struct {
	Symbols      int
	Skipped      int
	Errors       int
	Trades       int
	AvgReturnPct float64
}

// Summarize folds the per-symbol results into batch totals. The average
// return is the mean over all closed trades across the batch.
func Summarize(results []Result) Summary {
	sum := Summary{Symbols: len(results)}
	var returns []float64
	for _, r := range results {
		switch {
		case r.Err != nil:
			sum.Errors++
		case r.Skipped != "":
			sum.Skipped++
		case r.Report != nil:
			sum.Trades += len(r.Report.Trades)
			for _, t := range r.Report.Trades {
				if t.Closed() {
					returns = append(returns, t.ReturnPct())
				}
			}
		}
	}
	if len(returns) > 0 {
		sum.AvgReturnPct = stat.Mean(returns, nil)
	}
	return sum
}
