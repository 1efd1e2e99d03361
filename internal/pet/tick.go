package pet

import "time"

// TickInput carries everything a decay tick depends on besides the prior state
type TickInput struct {
	Now            time.Time
	Rand           Rand
	MinuteBoundary bool // Set on every TicksPerMinute-th tick
	Rules          Rules
}

// Tick computes the state after one decay interval. It never mutates prev.
func Tick(prev Pet, in TickInput) Pet {
	if prev.IsDead() {
		return prev
	}

	next := prev.Clone()

	if in.MinuteBoundary && in.Rules.EconomyEnabled {
		applyAnimalRewards(&next)
	}

	next.Hunger = clampStat(prev.Hunger - HungerDecayPerTick)
	if prev.Status == StatusSleeping {
		next.Energy = clampStat(prev.Energy + EnergyRecoveryPerTick)
	} else {
		next.Energy = clampStat(prev.Energy - EnergyDecayPerTick)
	}
	next.Happiness = clampStat(prev.Happiness - HappinessDecayPerTick)

	// Poop left lying around hurts more than starving
	if next.Hunger == MinStat || next.Energy == MinStat || prev.PoopCount > 0 {
		loss := float64(HealthDecayPerTick)
		if prev.PoopCount > 0 {
			loss = PoopHealthDecayPerTick
		}
		next.Health = clampStat(prev.Health - loss)
	} else if next.Hunger > WellFedThreshold && next.Energy > WellFedThreshold {
		next.Health = clampStat(prev.Health + HealthRecoveryPerTick)
	}

	switch {
	case next.Health == MinStat:
		next.Status = StatusDead
	case prev.Status == StatusSleeping && next.Energy == MaxStat:
		next.Status = StatusAlive
	}

	if next.Status == StatusAlive && prev.Hunger > PoopHungerFloor {
		chance := PoopChance
		if in.Rules.EconomyEnabled && next.HasDiaper {
			chance = DiaperPoopChance
		}
		if in.Rand.Float64() < chance {
			next.PoopCount = min(next.PoopCount+1, MaxPoop)
		}
	}

	if !in.Rules.EconomyEnabled && next.Health > PassiveXPHealthFloor {
		applyXP(&next, PassiveXPPerTick, in.Rules)
	}

	next.LastUpdate = in.Now.UnixMilli()
	return next
}
