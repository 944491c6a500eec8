// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Tier is an ordered difficulty level for a single setting.
// The zero value is the easiest (vanilla) level.
type Tier int

// Difficulty tiers, ordered from easiest to hardest.
const (
	TierDefault Tier = iota
	TierHard
	TierDeathrun
	TierKharaa
)

var tierNames = [...]string{"default", "hard", "deathrun", "kharaa"}

// String returns the lowercase tier name.
func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Valid reports whether the tier is one of the defined levels.
func (t Tier) Valid() bool {
	return t >= TierDefault && int(t) < len(tierNames)
}

// MarshalText encodes the tier as its name.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText parses a tier name. Empty input means the default tier.
func (t *Tier) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if name == "" {
		*t = TierDefault
		return nil
	}
	for i, tn := range tierNames {
		if name == tn {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", name)
}

// Diet is the dietary restriction chosen for a run.
type Diet int

// Diet choices, ordered from unrestricted to most restrictive.
const (
	DietOmnivore Diet = iota
	DietVegetarian
	DietVegan
)

var dietNames = [...]string{"omnivore", "vegetarian", "vegan"}

// String returns the lowercase diet name.
func (d Diet) String() string {
	if !d.Valid() {
		return fmt.Sprintf("diet(%d)", int(d))
	}
	return dietNames[d]
}

// Valid reports whether the diet is one of the defined choices.
func (d Diet) Valid() bool {
	return d >= DietOmnivore && int(d) < len(dietNames)
}

// MarshalText encodes the diet as its name.
func (d Diet) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid diet %d", int(d))
	}
	return []byte(dietNames[d]), nil
}

// UnmarshalText parses a diet name. Empty input means omnivore.
func (d *Diet) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if name == "" {
		*d = DietOmnivore
		return nil
	}
	for i, dn := range dietNames {
		if name == dn {
			*d = Diet(i)
			return nil
		}
	}
	return fmt.Errorf("unknown diet %q", name)
}

// Achievement is a bit-set of milestones unlocked during a run.
type Achievement uint32

// Milestone flags.
const (
	AchieveSeamoth Achievement = 1 << iota
	AchievePrawn
	AchieveCyclops
	AchieveRadiationSuit
	AchieveReinforcedSuit
	AchieveRebreather
	AchieveCure
)

// AchieveAnyVehicle covers the three vehicle-tier milestones.
const AchieveAnyVehicle = AchieveSeamoth | AchievePrawn | AchieveCyclops

var achievementNames = []struct {
	flag Achievement
	name string
}{
	{AchieveSeamoth, "seamoth"},
	{AchievePrawn, "prawn"},
	{AchieveCyclops, "cyclops"},
	{AchieveRadiationSuit, "radiation-suit"},
	{AchieveReinforcedSuit, "reinforced-suit"},
	{AchieveRebreather, "rebreather"},
	{AchieveCure, "cure"},
}

// Has reports whether every flag in mask is set.
func (a Achievement) Has(mask Achievement) bool {
	return a&mask == mask
}

// Any reports whether at least one flag in mask is set.
func (a Achievement) Any(mask Achievement) bool {
	return a&mask != 0
}

// Names returns the set flag names in declaration order.
func (a Achievement) Names() []string {
	var names []string
	for _, an := range achievementNames {
		if a.Has(an.flag) {
			names = append(names, an.name)
		}
	}
	return names
}

// ParseAchievements builds a bit-set from flag names.
func ParseAchievements(names []string) (Achievement, error) {
	var set Achievement
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		found := false
		for _, an := range achievementNames {
			if name == an.name {
				set |= an.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown achievement %q", name)
		}
	}
	return set, nil
}

// GameMode is a bit-set of game-mode flags active for a run.
type GameMode uint8

// Game-mode flags. Hardcore is the only one that affects scoring.
const (
	ModeHardcore GameMode = 1 << iota
	ModeCreative
)

// Has reports whether every flag in mask is set.
func (g GameMode) Has(mask GameMode) bool {
	return g&mask == mask
}

// ConfigSave is an immutable snapshot of every difficulty and challenge
// setting active for a run. It is frozen at run start; the score
// calculator treats it as read-only.
type ConfigSave struct {
	// Difficulty-scaled settings. Kharaa is only reachable for creature
	// aggression and creature damage; the rest top out at deathrun.
	CreatureAggression Tier `json:"creatureAggression"`
	CreatureDamage     Tier `json:"creatureDamage"`
	CrushDepth         Tier `json:"crushDepth"`
	NitrogenBends      Tier `json:"nitrogenBends"`
	SurfaceAir         Tier `json:"surfaceAir"`
	RadiationDepth     Tier `json:"radiationDepth"`
	PowerCosts         Tier `json:"powerCosts"`
	VehicleCosts       Tier `json:"vehicleCosts"`
	VehicleExitCost    Tier `json:"vehicleExitCost"`
	BatteryCosts       Tier `json:"batteryCosts"`
	FoodValue          Tier `json:"foodValue"`
	WaterValue         Tier `json:"waterValue"`
	ExplosionDepth     Tier `json:"explosionDepth"`
	ExplosionTime      Tier `json:"explosionTime"`
	NoVehicles         Tier `json:"noVehicles"`

	// Boolean hazards.
	NonVanillaStart bool `json:"nonVanillaStart"`
	SunkenLifepod   bool `json:"sunkenLifepod"`

	// Challenge toggles contributing flat bonuses.
	FarmingChallenge    Tier `json:"farmingChallenge"`
	FilterPumpChallenge Tier `json:"filterPumpChallenge"`
	Diet                Diet `json:"diet"`
	IslandFoodChallenge Tier `json:"islandFoodChallenge"`
	PacifistChallenge   Tier `json:"pacifistChallenge"`
}

// RunStats is a snapshot of one completed play session.
//
// ScoreBase, ScoreMult, ScoreBonus, and ScoreTotal are derived fields
// written only by the score calculator; ScoreTotal is always the
// documented function of the other three and Deaths.
type RunStats struct {
	ID           int64       `json:"id"`
	RecordedAt   time.Time   `json:"recordedAt"`
	Time         float64     `json:"timeSeconds"`
	DepthReached float64     `json:"depthReached"`
	Achievements Achievement `json:"-"`
	Deaths       int         `json:"deaths"`
	Victory      bool        `json:"victory"`
	GameMode     GameMode    `json:"-"`
	Config       ConfigSave  `json:"config"`

	// Legacy runs carry only a count of hard settings instead of a
	// full config snapshot.
	IsLegacy            bool `json:"isLegacy,omitempty"`
	LegacySettingsCount int  `json:"legacySettingsCount,omitempty"`

	ScoreBase  float64 `json:"scoreBase,omitempty"`
	ScoreMult  float64 `json:"scoreMult,omitempty"`
	ScoreBonus float64 `json:"scoreBonus,omitempty"`
	ScoreTotal float64 `json:"scoreTotal,omitempty"`
}

// BoardConfig defines filters for leaderboard queries and reports.
type BoardConfig struct {
	VictoryOnly bool
	Since       *time.Time
	Last        int
	Top         int
}
