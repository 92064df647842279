package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"WaveScan/internal/config"
	"WaveScan/internal/export"
	"WaveScan/internal/model"
	"WaveScan/internal/recorder"
	"WaveScan/internal/scanner"
	"WaveScan/internal/scheduler"
	"WaveScan/internal/store"
	"WaveScan/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] WaveScan starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Open candle store
	st, err := store.Open(cfg.Database.CandlePath)
	if err != nil {
		log.Fatalf("[FATAL] open candle store: %v", err)
	}
	defer st.Close()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Results.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Results.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	variant := strategy.Variant(cfg.Scan.Strategy)
	sc := scanner.New(st, cfg.Strategy, variant, cfg.Filter, cfg.Scan.Workers)

	rescan := func(ctx context.Context) {
		symbols, err := universe(st, cfg)
		if err != nil {
			log.Printf("[ERROR] resolve universe: %v", err)
			return
		}
		log.Printf("[INFO] scanning %d symbols with %s", len(symbols), variant)

		results := sc.Run(ctx, symbols)
		sum := scanner.Summarize(results)
		log.Printf("[INFO] scan done: %d symbols, %d skipped, %d errors, %d trades, avg return %.2f%%",
			sum.Symbols, sum.Skipped, sum.Errors, sum.Trades, sum.AvgReturnPct)

		run := recorder.NewScanRun(string(variant))
		run.Symbols = sum.Symbols
		run.Skipped = sum.Skipped
		run.Trades = sum.Trades
		run.AvgRet = sum.AvgReturnPct
		if err := rec.RecordRun(run); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}
		for _, r := range results {
			if r.Report == nil || len(r.Report.Trades) == 0 {
				continue
			}
			if err := rec.RecordTrades(run.ID, r.Symbol, r.Report.Trades); err != nil {
				log.Printf("[ERROR] record trades for %s: %v", r.Symbol, err)
			}
		}

		if cfg.Results.PromoteWatchlist != "" {
			if err := promote(st, cfg.Results.PromoteWatchlist, results); err != nil {
				log.Printf("[ERROR] promote scan hits: %v", err)
			}
		}

		if cfg.Results.CSVPath != "" {
			if err := writeCSV(cfg.Results.CSVPath, results); err != nil {
				log.Printf("[ERROR] export csv: %v", err)
			} else {
				log.Printf("[INFO] trades exported to %s", cfg.Results.CSVPath)
			}
		}
	}

	// Always scan once at startup.
	rescan(ctx)

	if !cfg.Schedule.Watch {
		log.Println("[INFO] WaveScan finished")
		return
	}

	sched := scheduler.NewScheduler(ctx)
	if err := sched.RegisterRescan(cfg.Schedule.RescanCron, rescan); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] WaveScan is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")
}

// universe resolves the symbol list: explicit config symbols win, then
// the configured watchlist, then every symbol in the candle store.
func universe(st *store.Store, cfg *config.Config) ([]string, error) {
	if len(cfg.Scan.Symbols) > 0 {
		return cfg.Scan.Symbols, nil
	}
	if cfg.Scan.Watchlist != "" {
		symbols, err := st.WatchlistSymbols(cfg.Scan.Watchlist)
		if err != nil {
			return nil, err
		}
		if len(symbols) == 0 {
			return nil, fmt.Errorf("watchlist %q is empty", cfg.Scan.Watchlist)
		}
		return symbols, nil
	}
	return st.ListSymbols()
}

// promote adds every symbol that produced at least one trade to the
// named watchlist.
func promote(st *store.Store, name string, results []scanner.Result) error {
	id, err := st.CreateWatchlist(name)
	if err != nil {
		return err
	}
	added := 0
	for _, r := range results {
		if r.Report == nil || len(r.Report.Trades) == 0 {
			continue
		}
		if err := st.AddToWatchlist(id, r.Symbol); err != nil {
			return err
		}
		added++
	}
	if added > 0 {
		log.Printf("[INFO] promoted %d symbols to watchlist %q", added, name)
	}
	return nil
}

func writeCSV(path string, results []scanner.Result) error {
	trades := make(map[string][]*model.Trade)
	var order []string
	for _, r := range results {
		if r.Report == nil || len(r.Report.Trades) == 0 {
			continue
		}
		trades[r.Symbol] = r.Report.Trades
		order = append(order, r.Symbol)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return export.WriteTrades(f, trades, order)
}
