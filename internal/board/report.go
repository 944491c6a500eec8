// Package board builds and renders leaderboard reports.
package board

import (
	"context"

	"github.com/verte-zerg/runtally/internal/model"
	"github.com/verte-zerg/runtally/internal/store"
)

// Summary aggregates the filtered run history.
type Summary struct {
	Runs      int
	Victories int
	Deaths    int
	BestScore float64
	AvgScore  float64
	BestDepth float64
}

// Report contains precomputed data for board rendering.
type Report struct {
	Runs    []model.RunStats
	Top     []model.RunStats
	Summary Summary
}

// BuildReport loads and prepares data for board rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.BoardConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	top, err := st.TopRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:    runs,
		Top:     top,
		Summary: Summarize(runs),
	}, nil
}

// Summarize computes aggregate figures over a run list.
func Summarize(runs []model.RunStats) Summary {
	var sum Summary
	sum.Runs = len(runs)
	var total float64
	for _, r := range runs {
		if r.Victory {
			sum.Victories++
		}
		sum.Deaths += r.Deaths
		total += r.ScoreTotal
		if r.ScoreTotal > sum.BestScore {
			sum.BestScore = r.ScoreTotal
		}
		if r.DepthReached > sum.BestDepth {
			sum.BestDepth = r.DepthReached
		}
	}
	if sum.Runs > 0 {
		sum.AvgScore = total / float64(sum.Runs)
	}
	return sum
}
