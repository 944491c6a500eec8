// Package score implements the deterministic run scoring calculation.
// This file defines all constants used by the calculator: the base-score
// curves, the tier escalation table, the achievement and challenge value
// tables, and the clamping bounds.
package score

import "github.com/verte-zerg/runtally/internal/model"

// Base score curves.
const (
	// Survival time scores log2(hours+1)*TimePointsPerDouble: doubling
	// survival time adds a constant increment, not a constant multiple.
	TimePointsPerDouble = 2000.0

	// Depth scores linearly up to DepthCap metres.
	DepthCap       = 1500.0
	DepthMaxPoints = 5000.0
)

// Achievement point values for each milestone flag.
const (
	SeamothPoints        = 500.0
	PrawnPoints          = 750.0
	CyclopsPoints        = 1000.0
	RadiationSuitPoints  = 250.0
	ReinforcedSuitPoints = 350.0
	RebreatherPoints     = 250.0
	CurePoints           = 1500.0
)

// achievementPoints maps each milestone flag to its point value. Kept as
// an ordered association list so the breakdown renders in a stable order.
var achievementPoints = []struct {
	Flag   model.Achievement
	Points float64
}{
	{model.AchieveSeamoth, SeamothPoints},
	{model.AchievePrawn, PrawnPoints},
	{model.AchieveCyclops, CyclopsPoints},
	{model.AchieveRadiationSuit, RadiationSuitPoints},
	{model.AchieveReinforcedSuit, ReinforcedSuitPoints},
	{model.AchieveRebreather, RebreatherPoints},
	{model.AchieveCure, CurePoints},
}

// NoVehicleFlatBonus is added on top of the three vehicle-tier point
// values when a victorious run never used a vehicle. It compensates the
// player for the milestones a vehicle-free run cannot earn.
const NoVehicleFlatBonus = 3000.0

// Multiplier escalation. tierIncrement is indexed by tier rank: the
// hardest "kharaa" tier is only reachable for a couple of settings.
var tierIncrement = [...]float64{
	model.TierDefault:  0,
	model.TierHard:     0.10,
	model.TierDeathrun: 0.20,
	model.TierKharaa:   0.30,
}

// HardTierIncrement approximates one enabled hard setting for legacy
// runs, whose per-setting breakdown is unrecoverable.
const HardTierIncrement = 0.20

// MultiplierFloor is the minimum multiplier; no setting can reduce it.
const MultiplierFloor = 1.0

// Flat challenge bonuses.
const (
	ChallengeBonusSmall = 500.0
	ChallengeBonusBig   = 1000.0
	HardcoreBonus       = 1000.0
)

// Victory timing bonus: full reward inside the grace period, linear
// taper to half between grace and max hours, flat at half beyond.
const (
	VictoryBonusMax   = 5000.0
	VictoryGraceHours = 10.0
	VictoryMaxHours   = 50.0
)

// Death penalty: multiplier 1 - log(deaths)/log(DeathsForMaxMalus),
// clamped into [DeathMultFloor, 1]. Zero deaths bypasses the formula.
const (
	DeathsForMaxMalus = 10.0
	DeathMultFloor    = 0.1
)

// ScoreCeiling is the maximum displayable total. Well above any
// realistically achievable score; it only protects digit-limited UIs.
const ScoreCeiling = 999999.0
