// Package legacy imports score files written by the predecessor mod.
package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/runtally/internal/model"
)

// FileName is the trailing filename shared by every candidate location.
const FileName = "DeathRunStats.json"

// ErrNoLegacyFile reports that no candidate location holds a legacy
// score file. It is a clean "no data" result, distinguishable from a
// corrupt file, which surfaces as a parse error.
var ErrNoLegacyFile = errors.New("no legacy score file found")

// Stats is one historical high-score entry from the old format. The old
// format predates per-setting config snapshots: it only recorded how
// many hard settings were enabled.
type Stats struct {
	ID           int64   `json:"id"`
	RunTime      float64 `json:"runTime"`
	Depth        float64 `json:"depth"`
	Features     uint32  `json:"features"`
	Deaths       int     `json:"deaths"`
	Victory      bool    `json:"victory"`
	SettingCount int     `json:"settingCount"`
	Hardcore     bool    `json:"hardcore"`
}

// StatsFile is the on-disk representation of the predecessor scoring
// system: a list of historical high scores.
type StatsFile struct {
	HighScores []Stats `json:"highScores"`
}

// CandidatePaths builds the ordered probe list for the legacy file:
// the current plugin-loader's directory under the game install, the
// older loader's convention one level up from it, and this tool's own
// data directory for manually relocated files.
func CandidatePaths(gameDir, dataDir string) []string {
	return []string{
		filepath.Join(gameDir, "BepInEx", "plugins", "DeathRun", FileName),
		filepath.Join(gameDir, "QMods", "DeathRun", FileName),
		filepath.Join(dataDir, FileName),
	}
}

// FindLegacyFile probes the candidate paths in order and returns the
// first existing regular file, or ErrNoLegacyFile when none exists.
func FindLegacyFile(candidates []string) (string, error) {
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return path, nil
	}
	return "", ErrNoLegacyFile
}

// LoadLegacyStats locates and parses the legacy score file. A missing
// file returns ErrNoLegacyFile; a present but malformed file is a hard
// parse failure, never silently coerced into an empty result.
func LoadLegacyStats(candidates []string) (*StatsFile, error) {
	path, err := FindLegacyFile(candidates)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for a read-only file.
			_ = cerr
		}
	}()

	var stats StatsFile
	dec := json.NewDecoder(file)
	if err := dec.Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to parse legacy file %s: %w", path, err)
	}
	return &stats, nil
}

// ToRunStats coerces a legacy entry into the current scoring shape. The
// feature summary bits carry over as achievement flags; the per-setting
// config is unrecoverable and replaced by the hard-setting count.
func ToRunStats(entry Stats) model.RunStats {
	stats := model.RunStats{
		Time:                entry.RunTime,
		DepthReached:        entry.Depth,
		Achievements:        model.Achievement(entry.Features),
		Deaths:              entry.Deaths,
		Victory:             entry.Victory,
		IsLegacy:            true,
		LegacySettingsCount: entry.SettingCount,
	}
	if entry.Hardcore {
		stats.GameMode |= model.ModeHardcore
	}
	return stats
}
