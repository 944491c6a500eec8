package score

import (
	"math"

	"github.com/verte-zerg/runtally/internal/model"
)

// UpdateScore fills the four derived score fields of stats from the
// recorded run data and its config snapshot. It is deterministic and has
// no side effects beyond those fields. Inputs are assumed validated:
// negative time, depth, or deaths are a caller contract violation.
func UpdateScore(stats *model.RunStats) {
	stats.ScoreBase = BaseScore(stats)
	stats.ScoreMult = Multiplier(stats)
	stats.ScoreBonus = FlatBonus(stats)

	total := (stats.ScoreBase*stats.ScoreMult + stats.ScoreBonus) * DeathMultiplier(stats.Deaths)
	if total > ScoreCeiling {
		total = ScoreCeiling
	}
	stats.ScoreTotal = total
}

// BaseScore is the sum of the time, achievement, and depth components,
// plus the no-vehicle compensation for victorious vehicle-free runs.
func BaseScore(stats *model.RunStats) float64 {
	base := TimeScore(stats.Time) + AchievementScore(stats.Achievements) + DepthScore(stats.DepthReached)
	if stats.Victory && !stats.Achievements.Any(model.AchieveAnyVehicle) {
		base += noVehicleCompensation()
	}
	return base
}

// TimeScore converts survived seconds into points on a logarithmic
// curve: each doubling of survival time adds TimePointsPerDouble.
func TimeScore(seconds float64) float64 {
	hours := seconds / 3600.0
	return math.Log2(hours+1) * TimePointsPerDouble
}

// AchievementScore sums the point values of the set milestone flags.
func AchievementScore(flags model.Achievement) float64 {
	var sum float64
	for _, ap := range achievementPoints {
		if flags.Has(ap.Flag) {
			sum += ap.Points
		}
	}
	return sum
}

// DepthScore scores depth linearly, capped at DepthCap metres.
func DepthScore(depth float64) float64 {
	if depth < 0 {
		depth = 0
	}
	if depth > DepthCap {
		depth = DepthCap
	}
	return depth / DepthCap * DepthMaxPoints
}

// noVehicleCompensation returns the points a vehicle-free victory could
// not earn through the vehicle milestones, plus the flat challenge bonus.
func noVehicleCompensation() float64 {
	return SeamothPoints + PrawnPoints + CyclopsPoints + NoVehicleFlatBonus
}

// Multiplier derives the difficulty multiplier from the config snapshot.
// Legacy runs only know how many hard settings were enabled, so their
// multiplier is approximated from that count.
func Multiplier(stats *model.RunStats) float64 {
	if stats.IsLegacy {
		return MultiplierFloor + float64(stats.LegacySettingsCount)*HardTierIncrement
	}

	cfg := stats.Config
	mult := MultiplierFloor

	// weight 2 marks nitrogen bends as unusually impactful.
	scaled := []struct {
		tier   model.Tier
		weight float64
	}{
		{cfg.CreatureAggression, 1},
		{cfg.CreatureDamage, 1},
		{cfg.CrushDepth, 1},
		{cfg.NitrogenBends, 2},
		{cfg.SurfaceAir, 1},
		{cfg.RadiationDepth, 1},
		{cfg.PowerCosts, 1},
		{cfg.VehicleCosts, 1},
		{cfg.VehicleExitCost, 1},
		{cfg.BatteryCosts, 1},
		{cfg.FoodValue, 1},
		{cfg.WaterValue, 1},
		{cfg.ExplosionDepth, 1},
		{cfg.ExplosionTime, 1},
		{cfg.NoVehicles, 1},
	}
	for _, s := range scaled {
		mult += tierIncrement[s.tier] * s.weight
	}

	if cfg.NonVanillaStart {
		mult += tierIncrement[model.TierDeathrun]
	}
	if cfg.SunkenLifepod {
		mult += tierIncrement[model.TierDeathrun]
	}
	// A fully vehicle-free config is disproportionately harder than its
	// tier suggests.
	if cfg.NoVehicles == model.TierDeathrun {
		mult += 2 * tierIncrement[model.TierDeathrun]
	}

	return mult
}

// FlatBonus sums the challenge bonuses, the victory timing bonus, and
// the hardcore game-mode bonus. Challenges are additive and independent
// of the multiplier.
func FlatBonus(stats *model.RunStats) float64 {
	var bonus float64
	if !stats.IsLegacy {
		cfg := stats.Config
		bonus += challengeBonus(cfg.NoVehicles)
		bonus += challengeBonus(cfg.FarmingChallenge)
		bonus += challengeBonus(cfg.FilterPumpChallenge)
		bonus += dietBonus(cfg.Diet)
		bonus += challengeBonus(cfg.IslandFoodChallenge)
		bonus += challengeBonus(cfg.PacifistChallenge)
	}
	bonus += VictoryBonus(stats.Victory, stats.Time)
	if stats.GameMode.Has(model.ModeHardcore) {
		bonus += HardcoreBonus
	}
	return bonus
}

func challengeBonus(tier model.Tier) float64 {
	switch {
	case tier >= model.TierDeathrun:
		return ChallengeBonusBig
	case tier == model.TierHard:
		return ChallengeBonusSmall
	default:
		return 0
	}
}

func dietBonus(diet model.Diet) float64 {
	switch diet {
	case model.DietVegan:
		return ChallengeBonusBig
	case model.DietVegetarian:
		return ChallengeBonusSmall
	default:
		return 0
	}
}

// VictoryBonus rewards finishing at all, with the full reward inside the
// grace period and a linear taper down to half the reward at
// VictoryMaxHours. It never drops below half for a victorious run.
func VictoryBonus(victory bool, seconds float64) float64 {
	if !victory {
		return 0
	}
	hours := seconds / 3600.0
	if hours <= VictoryGraceHours {
		return VictoryBonusMax
	}
	if hours >= VictoryMaxHours {
		return VictoryBonusMax / 2
	}
	frac := (hours - VictoryGraceHours) / (VictoryMaxHours - VictoryGraceHours)
	return VictoryBonusMax * (1 - frac/2)
}

// DeathMultiplier reduces the total on a logarithmic curve that
// saturates at DeathsForMaxMalus deaths. Zero deaths is an identity
// multiplier; the formula never receives a non-positive log argument.
func DeathMultiplier(deaths int) float64 {
	if deaths == 0 {
		return 1.0
	}
	mult := 1 - math.Log(float64(deaths))/math.Log(DeathsForMaxMalus)
	if mult < DeathMultFloor {
		return DeathMultFloor
	}
	if mult > 1 {
		return 1.0
	}
	return mult
}
