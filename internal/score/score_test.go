package score

import (
	"math"
	"testing"

	"github.com/verte-zerg/runtally/internal/model"
)

func TestDeathMultiplierZeroDeaths(t *testing.T) {
	if got := DeathMultiplier(0); got != 1.0 {
		t.Fatalf("expected exactly 1.0 for zero deaths, got %v", got)
	}
}

func TestDeathMultiplierBounds(t *testing.T) {
	for deaths := 1; deaths <= 1000; deaths++ {
		mult := DeathMultiplier(deaths)
		if mult < DeathMultFloor || mult > 1.0 {
			t.Fatalf("deaths=%d: multiplier %v outside [%v, 1]", deaths, mult, DeathMultFloor)
		}
	}
	if got := DeathMultiplier(1); got != 1.0 {
		t.Fatalf("expected 1.0 at one death (boundary of the curve), got %v", got)
	}
	if got := DeathMultiplier(int(DeathsForMaxMalus)); got != DeathMultFloor {
		t.Fatalf("expected floor %v at saturation, got %v", DeathMultFloor, got)
	}
	if got := DeathMultiplier(100000); got != DeathMultFloor {
		t.Fatalf("expected floor %v far beyond saturation, got %v", DeathMultFloor, got)
	}
}

func TestDeathMultiplierMonotone(t *testing.T) {
	prev := DeathMultiplier(1)
	for deaths := 2; deaths <= 50; deaths++ {
		cur := DeathMultiplier(deaths)
		if cur > prev {
			t.Fatalf("multiplier increased from %v to %v at deaths=%d", prev, cur, deaths)
		}
		prev = cur
	}
}

func TestTotalMonotoneInDepth(t *testing.T) {
	prev := -1.0
	for depth := 0.0; depth <= 2000; depth += 50 {
		stats := model.RunStats{Time: 3600, DepthReached: depth}
		UpdateScore(&stats)
		if stats.ScoreTotal < prev {
			t.Fatalf("total decreased at depth %v: %v < %v", depth, stats.ScoreTotal, prev)
		}
		if depth > DepthCap {
			capped := model.RunStats{Time: 3600, DepthReached: DepthCap}
			UpdateScore(&capped)
			if stats.ScoreTotal != capped.ScoreTotal {
				t.Fatalf("total not flat beyond depth cap: %v != %v", stats.ScoreTotal, capped.ScoreTotal)
			}
		}
		prev = stats.ScoreTotal
	}
}

func TestTimeScoreDoublingAddsConstant(t *testing.T) {
	// log2(h+1) is not exactly increment-constant under doubling of h,
	// so check the documented property on the curve input directly:
	// doubling (hours+1) adds exactly TimePointsPerDouble.
	base := TimeScore(3600) // 1h: log2(2)
	for i := 1; i <= 5; i++ {
		hours := math.Pow(2, float64(i+1)) - 1
		got := TimeScore(hours * 3600)
		want := base + float64(i)*TimePointsPerDouble
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("at %v hours: got %v, want %v", hours, got, want)
		}
	}
}

func TestVictoryBonus(t *testing.T) {
	tests := []struct {
		name    string
		victory bool
		hours   float64
		want    float64
	}{
		{"no victory", false, 5, 0},
		{"within grace", true, VictoryGraceHours - 1, VictoryBonusMax},
		{"at grace boundary", true, VictoryGraceHours, VictoryBonusMax},
		{"at max hours", true, VictoryMaxHours, VictoryBonusMax / 2},
		{"beyond max hours", true, VictoryMaxHours * 4, VictoryBonusMax / 2},
		{"midpoint interpolates", true, (VictoryGraceHours + VictoryMaxHours) / 2, VictoryBonusMax * 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VictoryBonus(tt.victory, tt.hours*3600)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNonVictoryHasNoVictoryBonus(t *testing.T) {
	stats := model.RunStats{Time: 7200, Deaths: 3}
	if got := FlatBonus(&stats); got != 0 {
		t.Fatalf("expected zero flat bonus for default non-victory run, got %v", got)
	}
}

func TestMultiplierDefaults(t *testing.T) {
	stats := model.RunStats{Time: 3600}
	if got := Multiplier(&stats); got != MultiplierFloor {
		t.Fatalf("all-default config should yield the floor multiplier, got %v", got)
	}
}

func TestMultiplierEscalation(t *testing.T) {
	var cfg model.ConfigSave
	cfg.CrushDepth = model.TierHard
	stats := model.RunStats{Config: cfg}
	if got, want := Multiplier(&stats), 1.1; math.Abs(got-want) > 1e-9 {
		t.Fatalf("hard tier: got %v, want %v", got, want)
	}

	cfg.CrushDepth = model.TierDeathrun
	stats.Config = cfg
	if got, want := Multiplier(&stats), 1.2; math.Abs(got-want) > 1e-9 {
		t.Fatalf("deathrun tier: got %v, want %v", got, want)
	}

	cfg.CrushDepth = model.TierDefault
	cfg.CreatureAggression = model.TierKharaa
	stats.Config = cfg
	if got, want := Multiplier(&stats), 1.3; math.Abs(got-want) > 1e-9 {
		t.Fatalf("kharaa tier: got %v, want %v", got, want)
	}
}

func TestMultiplierNitrogenCountsDouble(t *testing.T) {
	var cfg model.ConfigSave
	cfg.NitrogenBends = model.TierDeathrun
	stats := model.RunStats{Config: cfg}
	if got, want := Multiplier(&stats), 1.4; math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMultiplierBooleanHazards(t *testing.T) {
	var cfg model.ConfigSave
	cfg.NonVanillaStart = true
	cfg.SunkenLifepod = true
	stats := model.RunStats{Config: cfg}
	want := MultiplierFloor + 2*HardTierIncrement
	if got := Multiplier(&stats); math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMultiplierNoVehiclesExtra(t *testing.T) {
	var cfg model.ConfigSave
	cfg.NoVehicles = model.TierDeathrun
	stats := model.RunStats{Config: cfg}
	// Normal deathrun increment plus the doubled extra.
	want := MultiplierFloor + 0.2 + 0.4
	if got := Multiplier(&stats); math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLegacyMultiplier(t *testing.T) {
	for k := 0; k <= 12; k++ {
		stats := model.RunStats{IsLegacy: true, LegacySettingsCount: k}
		want := 1 + float64(k)*HardTierIncrement
		if got := Multiplier(&stats); math.Abs(got-want) > 1e-9 {
			t.Fatalf("k=%d: got %v, want %v", k, got, want)
		}
	}
}

func TestNoVehicleCompensationRequiresVictory(t *testing.T) {
	win := model.RunStats{Time: 3600, Victory: true}
	loss := model.RunStats{Time: 3600, Victory: false}
	diff := BaseScore(&win) - BaseScore(&loss)
	want := SeamothPoints + PrawnPoints + CyclopsPoints + NoVehicleFlatBonus
	if math.Abs(diff-want) > 1e-9 {
		t.Fatalf("victory compensation = %v, want %v", diff, want)
	}

	// A vehicle milestone forfeits the compensation.
	withVehicle := model.RunStats{Time: 3600, Victory: true, Achievements: model.AchieveSeamoth}
	got := BaseScore(&withVehicle)
	wantBase := TimeScore(3600) + SeamothPoints
	if math.Abs(got-wantBase) > 1e-9 {
		t.Fatalf("got %v, want %v", got, wantBase)
	}
}

func TestChallengeBonuses(t *testing.T) {
	var cfg model.ConfigSave
	cfg.FarmingChallenge = model.TierHard
	cfg.PacifistChallenge = model.TierDeathrun
	cfg.Diet = model.DietVegan
	stats := model.RunStats{Config: cfg}
	want := ChallengeBonusSmall + ChallengeBonusBig + ChallengeBonusBig
	if got := FlatBonus(&stats); math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestHardcoreBonus(t *testing.T) {
	stats := model.RunStats{GameMode: model.ModeHardcore}
	if got := FlatBonus(&stats); got != HardcoreBonus {
		t.Fatalf("got %v, want %v", got, HardcoreBonus)
	}
}

func TestDocumentedExample(t *testing.T) {
	// 2h survived, 750m depth, no achievements, no deaths, no victory,
	// all settings at the easiest tier.
	stats := model.RunStats{Time: 7200, DepthReached: 750}
	UpdateScore(&stats)

	wantBase := math.Log2(3)*TimePointsPerDouble + 2500
	if math.Abs(stats.ScoreBase-wantBase) > 1e-9 {
		t.Fatalf("base = %v, want %v", stats.ScoreBase, wantBase)
	}
	if stats.ScoreMult != 1.0 {
		t.Fatalf("mult = %v, want 1.0", stats.ScoreMult)
	}
	if stats.ScoreBonus != 0 {
		t.Fatalf("bonus = %v, want 0", stats.ScoreBonus)
	}
	if math.Abs(stats.ScoreTotal-wantBase) > 1e-9 {
		t.Fatalf("total = %v, want %v", stats.ScoreTotal, wantBase)
	}
	if stats.ScoreTotal < 5669 || stats.ScoreTotal > 5671 {
		t.Fatalf("total = %v, want ≈5670", stats.ScoreTotal)
	}
}

func TestUpdateScoreDeterministic(t *testing.T) {
	var cfg model.ConfigSave
	cfg.CreatureAggression = model.TierKharaa
	cfg.NitrogenBends = model.TierDeathrun
	cfg.NoVehicles = model.TierDeathrun
	cfg.SunkenLifepod = true
	cfg.Diet = model.DietVegetarian

	first := model.RunStats{
		Time:         123456.789,
		DepthReached: 1423.5,
		Achievements: model.AchieveRadiationSuit | model.AchieveCure,
		Deaths:       7,
		Victory:      true,
		GameMode:     model.ModeHardcore,
		Config:       cfg,
	}
	second := first

	UpdateScore(&first)
	UpdateScore(&second)
	// Recomputing from already-scored stats must also be stable.
	UpdateScore(&second)

	if first.ScoreBase != second.ScoreBase ||
		first.ScoreMult != second.ScoreMult ||
		first.ScoreBonus != second.ScoreBonus ||
		first.ScoreTotal != second.ScoreTotal {
		t.Fatalf("scores differ between identical inputs: %+v vs %+v", first, second)
	}
}

func TestScoreCeiling(t *testing.T) {
	var cfg model.ConfigSave
	cfg.CreatureAggression = model.TierKharaa
	cfg.CreatureDamage = model.TierKharaa
	cfg.NitrogenBends = model.TierDeathrun
	cfg.NoVehicles = model.TierDeathrun
	stats := model.RunStats{
		// An absurd survival time pushes the raw total past the ceiling.
		Time:         math.Exp2(400) * 3600,
		DepthReached: DepthCap,
		Achievements: model.AchieveRadiationSuit | model.AchieveReinforcedSuit | model.AchieveRebreather | model.AchieveCure,
		Victory:      true,
		GameMode:     model.ModeHardcore,
		Config:       cfg,
	}
	UpdateScore(&stats)
	if stats.ScoreTotal != ScoreCeiling {
		t.Fatalf("total %v, want ceiling %v", stats.ScoreTotal, ScoreCeiling)
	}
}

func TestAchievementScoreTable(t *testing.T) {
	tests := []struct {
		name  string
		flags model.Achievement
		want  float64
	}{
		{"none", 0, 0},
		{"seamoth", model.AchieveSeamoth, SeamothPoints},
		{"all vehicles", model.AchieveAnyVehicle, SeamothPoints + PrawnPoints + CyclopsPoints},
		{"cure", model.AchieveCure, CurePoints},
		{"mixed", model.AchievePrawn | model.AchieveRebreather, PrawnPoints + RebreatherPoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AchievementScore(tt.flags); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
