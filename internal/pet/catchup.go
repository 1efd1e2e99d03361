package pet

import "time"

// CatchUp applies the decay the pet accumulated while nobody was watching: hunger drops
// one point every CatchUpHungerMinutes and energy one point every CatchUpEnergyMinutes
// of whole elapsed minutes. Daily charges are reset when the calendar day changed.
func CatchUp(p Pet, now time.Time) Pet {
	next := p.Clone()

	elapsedMinutes := max((now.UnixMilli()-p.LastUpdate)/int64(time.Minute/time.Millisecond), 0)
	next.Hunger = clampStat(next.Hunger - float64(elapsedMinutes/CatchUpHungerMinutes))
	next.Energy = clampStat(next.Energy - float64(elapsedMinutes/CatchUpEnergyMinutes))

	next, _ = RefreshDailyCounts(next, now)
	next.LastUpdate = now.UnixMilli()
	return next
}
