package pet

// applyXP adds delta to the pet's XP and applies the level-up rule. Overflow past
// several thresholds is normalized in one call; the vitals restoration is applied once
// and coins are granted per level gained. It reports whether a level was gained.
func applyXP(p *Pet, delta int, rules Rules) bool {
	p.XP = max(p.XP+delta, 0)

	gained := p.normalizeXP()
	if gained == 0 {
		return false
	}

	p.Hunger = clampStat(p.Hunger + LevelUpRestore)
	p.Happiness = clampStat(p.Happiness + LevelUpRestore)
	p.Energy = clampStat(p.Energy + LevelUpRestore)
	p.Health = clampStat(p.Health + LevelUpRestore)
	p.Status = StatusAlive
	if rules.EconomyEnabled {
		p.Coins += LevelUpCoins * gained
	}
	return true
}

// normalizeXP converts surplus XP into levels until XP is below the threshold. At
// MaxLevel the surplus is dropped. It returns the number of levels gained.
func (p *Pet) normalizeXP() int {
	p.Level = min(max(p.Level, 1), MaxLevel)
	p.XP = max(p.XP, 0)

	gained := 0
	for p.Level < MaxLevel && p.XP >= p.XPThreshold() {
		p.XP -= p.XPThreshold()
		p.Level++
		gained++
	}
	if p.Level == MaxLevel {
		p.XP = min(p.XP, p.XPThreshold()-1)
	}
	return gained
}

// XPProgress returns the fraction of the way to the next level, in [0, 1)
func XPProgress(p Pet) float64 {
	threshold := p.XPThreshold()
	if threshold <= 0 {
		return 0
	}
	return float64(p.XP) / float64(threshold)
}
