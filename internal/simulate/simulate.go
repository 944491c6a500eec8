// Package simulate builds plausible sample runs for demo boards.
package simulate

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/runtally/internal/model"
	"github.com/verte-zerg/runtally/internal/score"
)

// Generator produces randomized but plausible scored runs. The same
// seed always yields the same sequence.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator with an explicit seed.
func New(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Runs generates count scored runs with recording times spaced one day
// apart, ending at the given time.
func (g *Generator) Runs(count int, end time.Time) []model.RunStats {
	runs := make([]model.RunStats, 0, count)
	for i := 0; i < count; i++ {
		stats := g.run()
		stats.RecordedAt = end.AddDate(0, 0, i-count+1)
		score.UpdateScore(&stats)
		runs = append(runs, stats)
	}
	return runs
}

func (g *Generator) run() model.RunStats {
	stats := model.RunStats{
		Time:         float64(g.rnd.Intn(40*3600) + 600),
		DepthReached: g.rnd.Float64() * 1700,
		Deaths:       g.rnd.Intn(8),
		Victory:      g.rnd.Float64() < 0.25,
		Config:       g.config(),
	}
	if g.rnd.Float64() < 0.15 {
		stats.GameMode |= model.ModeHardcore
	}
	stats.Achievements = g.achievements(stats)
	return stats
}

func (g *Generator) achievements(stats model.RunStats) model.Achievement {
	var flags model.Achievement
	// Deeper, longer runs are likelier to have hit milestones.
	chance := stats.DepthReached/2000 + stats.Time/(80*3600)
	for _, flag := range []model.Achievement{
		model.AchieveSeamoth,
		model.AchievePrawn,
		model.AchieveCyclops,
		model.AchieveRadiationSuit,
		model.AchieveReinforcedSuit,
		model.AchieveRebreather,
		model.AchieveCure,
	} {
		if g.rnd.Float64() < chance {
			flags |= flag
		}
	}
	if stats.Config.NoVehicles != model.TierDefault {
		flags &^= model.AchieveAnyVehicle
	}
	return flags
}

func (g *Generator) config() model.ConfigSave {
	var cfg model.ConfigSave
	cfg.CreatureAggression = g.tier(model.TierKharaa)
	cfg.CreatureDamage = g.tier(model.TierKharaa)
	cfg.CrushDepth = g.tier(model.TierDeathrun)
	cfg.NitrogenBends = g.tier(model.TierDeathrun)
	cfg.SurfaceAir = g.tier(model.TierDeathrun)
	cfg.RadiationDepth = g.tier(model.TierDeathrun)
	cfg.PowerCosts = g.tier(model.TierDeathrun)
	cfg.VehicleCosts = g.tier(model.TierDeathrun)
	cfg.VehicleExitCost = g.tier(model.TierDeathrun)
	cfg.BatteryCosts = g.tier(model.TierDeathrun)
	cfg.FoodValue = g.tier(model.TierDeathrun)
	cfg.WaterValue = g.tier(model.TierDeathrun)
	cfg.ExplosionDepth = g.tier(model.TierDeathrun)
	cfg.ExplosionTime = g.tier(model.TierDeathrun)
	cfg.NoVehicles = g.tier(model.TierDeathrun)
	cfg.NonVanillaStart = g.rnd.Float64() < 0.2
	cfg.SunkenLifepod = g.rnd.Float64() < 0.2
	cfg.FarmingChallenge = g.tier(model.TierDeathrun)
	cfg.FilterPumpChallenge = g.tier(model.TierDeathrun)
	cfg.Diet = model.Diet(g.rnd.Intn(int(model.DietVegan) + 1))
	cfg.IslandFoodChallenge = g.tier(model.TierDeathrun)
	cfg.PacifistChallenge = g.tier(model.TierDeathrun)
	return cfg
}

func (g *Generator) tier(max model.Tier) model.Tier {
	return model.Tier(g.rnd.Intn(int(max) + 1))
}
