package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"WaveScan/internal/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "candles.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleBars(n int) []model.Bar {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.Bar{
			Index: i,
			Time:  base.AddDate(0, 0, i),
			Open:  p, High: p + 1, Low: p - 1, Close: p + 0.5,
			Volume: 1000 + float64(i),
		}
	}
	return bars
}

func TestSaveLoadBars(t *testing.T) {
	s := tempStore(t)
	want := sampleBars(5)
	if err := s.SaveBars("sh600000", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadBars("sh600000")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d bars, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Index != i {
			t.Errorf("bar %d index %d", i, got[i].Index)
		}
		if !got[i].Time.Equal(want[i].Time) {
			t.Errorf("bar %d time %v, want %v", i, got[i].Time, want[i].Time)
		}
		if got[i].Close != want[i].Close || got[i].Volume != want[i].Volume {
			t.Errorf("bar %d data mismatch: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestLoadBars_Missing(t *testing.T) {
	s := tempStore(t)
	_, err := s.LoadBars("sh999999")
	if err == nil {
		t.Fatal("expected an error for a missing symbol")
	}
	if !errors.Is(err, ErrNoCandles) {
		t.Errorf("error %v does not wrap ErrNoCandles", err)
	}
}

func TestListSymbols_SkipsInternalTables(t *testing.T) {
	s := tempStore(t)
	if err := s.SaveBars("sh600000", sampleBars(3)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveBars("sz000001", sampleBars(3)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.CreateWatchlist("growth"); err != nil {
		t.Fatalf("create watchlist: %v", err)
	}

	symbols, err := s.ListSymbols()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("got %v, want the two candle tables only", symbols)
	}
	if symbols[0] != "sh600000" || symbols[1] != "sz000001" {
		t.Errorf("unexpected symbols %v", symbols)
	}
}

func TestWatchlists(t *testing.T) {
	s := tempStore(t)
	id, err := s.CreateWatchlist("growth")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	again, err := s.CreateWatchlist("growth")
	if err != nil {
		t.Fatalf("create twice: %v", err)
	}
	if id != again {
		t.Errorf("duplicate create returned id %d, want %d", again, id)
	}

	for _, sym := range []string{"sh600000", "sz000001", "sh600000"} {
		if err := s.AddToWatchlist(id, sym); err != nil {
			t.Fatalf("add %s: %v", sym, err)
		}
	}
	symbols, err := s.WatchlistSymbols("growth")
	if err != nil {
		t.Fatalf("symbols: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("got %v, want duplicates ignored", symbols)
	}
	if symbols[0] != "sh600000" || symbols[1] != "sz000001" {
		t.Errorf("order %v, want insertion order", symbols)
	}

	empty, err := s.WatchlistSymbols("value")
	if err != nil {
		t.Fatalf("unknown watchlist: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown watchlist returned %v", empty)
	}

	if err := s.RemoveFromWatchlist(id, "sh600000"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	symbols, err = s.WatchlistSymbols("growth")
	if err != nil {
		t.Fatalf("symbols after remove: %v", err)
	}
	if len(symbols) != 1 || symbols[0] != "sz000001" {
		t.Errorf("after remove got %v, want [sz000001]", symbols)
	}
}

func TestListWatchlists(t *testing.T) {
	s := tempStore(t)
	names, err := s.ListWatchlists()
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("fresh store returned %v", names)
	}

	for _, name := range []string{"growth", "value"} {
		if _, err := s.CreateWatchlist(name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	names, err = s.ListWatchlists()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "growth" || names[1] != "value" {
		t.Errorf("got %v, want creation order", names)
	}
}
