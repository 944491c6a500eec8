// Package runfile loads run records produced by an external run tracker.
package runfile

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/verte-zerg/runtally/internal/model"
)

// record is the JSON shape of a run file. Achievements and game modes
// travel as flag names; tiers and diets as their lowercase names.
type record struct {
	RecordedAt   time.Time        `json:"recordedAt"`
	TimeSeconds  float64          `json:"timeSeconds"`
	DepthReached float64          `json:"depthReached"`
	Achievements []string         `json:"achievements"`
	Deaths       int              `json:"deaths"`
	Victory      bool             `json:"victory"`
	Hardcore     bool             `json:"hardcore"`
	Creative     bool             `json:"creative"`
	Config       model.ConfigSave `json:"config"`
}

// Load reads and validates a run record from a JSON file.
func Load(path string) (*model.RunStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a run record. The score calculator
// assumes validated input, so range checks happen here at the boundary.
func Parse(data []byte) (*model.RunStats, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse run file: %w", err)
	}
	if rec.TimeSeconds < 0 {
		return nil, fmt.Errorf("timeSeconds must be >= 0, got %v", rec.TimeSeconds)
	}
	if rec.DepthReached < 0 {
		return nil, fmt.Errorf("depthReached must be >= 0, got %v", rec.DepthReached)
	}
	if rec.Deaths < 0 {
		return nil, fmt.Errorf("deaths must be >= 0, got %d", rec.Deaths)
	}

	flags, err := model.ParseAchievements(rec.Achievements)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run file: %w", err)
	}

	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	stats := &model.RunStats{
		RecordedAt:   recordedAt,
		Time:         rec.TimeSeconds,
		DepthReached: rec.DepthReached,
		Achievements: flags,
		Deaths:       rec.Deaths,
		Victory:      rec.Victory,
		Config:       rec.Config,
	}
	if rec.Hardcore {
		stats.GameMode |= model.ModeHardcore
	}
	if rec.Creative {
		stats.GameMode |= model.ModeCreative
	}
	return stats, nil
}
