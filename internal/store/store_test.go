package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/runtally/internal/model"
	"github.com/verte-zerg/runtally/internal/score"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "runtally.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testRun(i int, victory bool) model.RunStats {
	var cfg model.ConfigSave
	cfg.NitrogenBends = model.TierDeathrun
	cfg.Diet = model.DietVegetarian
	stats := model.RunStats{
		RecordedAt:   time.Unix(0, 0).Add(time.Duration(i) * time.Hour),
		Time:         float64(i+1) * 3600,
		DepthReached: float64(200 * (i + 1)),
		Achievements: model.AchieveSeamoth,
		Deaths:       i,
		Victory:      victory,
		GameMode:     model.ModeHardcore,
		Config:       cfg,
	}
	score.UpdateScore(&stats)
	return stats
}

func TestInsertAndListRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	want := testRun(1, true)
	id, err := st.InsertRun(ctx, want)
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected nonzero row id")
	}

	runs, err := st.ListRuns(ctx, model.BoardConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.Time != want.Time || got.DepthReached != want.DepthReached || got.Deaths != want.Deaths {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if got.Achievements != want.Achievements || got.GameMode != want.GameMode {
		t.Fatalf("bit-sets mismatch: got %+v, want %+v", got, want)
	}
	if got.Config != want.Config {
		t.Fatalf("config mismatch: got %+v, want %+v", got.Config, want.Config)
	}
	if got.ScoreTotal != want.ScoreTotal || got.ScoreMult != want.ScoreMult {
		t.Fatalf("score mismatch: got %+v, want %+v", got, want)
	}
	if !got.RecordedAt.Equal(want.RecordedAt) {
		t.Fatalf("recorded at mismatch: got %v, want %v", got.RecordedAt, want.RecordedAt)
	}
}

func TestListRunsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := st.InsertRun(ctx, testRun(i, i%2 == 0)); err != nil {
			t.Fatalf("insert run %d: %v", i, err)
		}
	}

	victories, err := st.ListRuns(ctx, model.BoardConfig{VictoryOnly: true})
	if err != nil {
		t.Fatalf("list victories: %v", err)
	}
	if len(victories) != 3 {
		t.Fatalf("expected 3 victories, got %d", len(victories))
	}

	since := time.Unix(0, 0).Add(3 * time.Hour)
	recent, err := st.ListRuns(ctx, model.BoardConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent runs, got %d", len(recent))
	}

	last, err := st.ListRuns(ctx, model.BoardConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(last))
	}
	if !last[0].RecordedAt.Before(last[1].RecordedAt) {
		t.Fatalf("expected ascending order: %v, %v", last[0].RecordedAt, last[1].RecordedAt)
	}
}

func TestTopRunsOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := st.InsertRun(ctx, testRun(i, false)); err != nil {
			t.Fatalf("insert run %d: %v", i, err)
		}
	}

	top, err := st.TopRuns(ctx, model.BoardConfig{Top: 3})
	if err != nil {
		t.Fatalf("top runs: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].ScoreTotal > top[i-1].ScoreTotal {
			t.Fatalf("top runs not sorted by score: %v > %v", top[i].ScoreTotal, top[i-1].ScoreTotal)
		}
	}
}
