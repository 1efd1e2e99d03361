package pet

import "time"

// Every action returns the next state and whether anything changed. A rejected action
// returns the input unchanged. Apart from Revive and Reset, nothing changes a dead pet.
//
// When an XP grant levels the pet up, the level-up restoration replaces the action's own
// vital changes; consumed charges (feeds, plays, poop) are still consumed.

// Feed gives the pet a meal
func Feed(p Pet, rules Rules) (Pet, bool) {
	if !p.CanAct() || p.FeedCount <= 0 {
		return p, false
	}
	next := p.Clone()
	next.FeedCount--
	if !applyXP(&next, FeedXP, rules) {
		next.Hunger = clampStat(next.Hunger + FeedHungerIncrease)
		next.Happiness = clampStat(next.Happiness + FeedHappinessIncrease)
		if rules.EconomyEnabled {
			next.Health = clampStat(next.Health + FeedHealthIncrease)
		}
	}
	return next, true
}

// Play plays with the pet, which needs some energy to spare
func Play(p Pet, rules Rules) (Pet, bool) {
	if !p.CanAct() || p.PlayCount <= 0 || p.Energy < PlayMinEnergy {
		return p, false
	}
	next := p.Clone()
	next.PlayCount--
	if !applyXP(&next, PlayXP, rules) {
		next.Happiness = clampStat(next.Happiness + PlayHappinessIncrease)
		next.Energy = clampStat(next.Energy - PlayEnergyDecrease)
	}
	return next, true
}

// Deliver sends the pet on a delivery run for a little XP. The returned result tells
// the caller whether a special mission or a gift box turned up.
func Deliver(p Pet, rules Rules, rng Rand) (Pet, DeliverResult, bool) {
	if !p.CanAct() {
		return p, DeliverResult{}, false
	}
	result := RollDeliverEvents(rng)
	next := p.Clone()
	xp := DeliverXP + DeliveryBonus(next.CollectedAnimals, rules)
	if !applyXP(&next, xp, rules) {
		next.Energy = clampStat(next.Energy - DeliverEnergyCost)
	}
	return next, result, true
}

// CleanPoop removes one poop
func CleanPoop(p Pet, rules Rules) (Pet, bool) {
	if p.IsDead() || p.PoopCount <= 0 {
		return p, false
	}
	next := p.Clone()
	next.PoopCount--
	if !applyXP(&next, CleanXP, rules) {
		next.Happiness = clampStat(next.Happiness + CleanHappinessIncrease)
	}
	return next, true
}

// ToggleSleep puts the pet to bed or wakes it up
func ToggleSleep(p Pet) (Pet, bool) {
	if p.IsDead() {
		return p, false
	}
	next := p.Clone()
	if p.Status == StatusSleeping {
		next.Status = StatusAlive
	} else {
		next.Status = StatusSleeping
	}
	return next, true
}

// Revive restores a pet to full health whatever state it is in
func Revive(p Pet, now time.Time) Pet {
	next := p.Clone()
	next.Hunger = MaxStat
	next.Happiness = MaxStat
	next.Energy = MaxStat
	next.Health = MaxStat
	next.Status = StatusAlive
	next.PoopCount = 0
	next.LastUpdate = now.UnixMilli()
	return next
}

// Reset replaces the pet with a brand new one
func Reset(now time.Time) Pet {
	return NewPet(now)
}

// Rename changes the pet's name. Names are trimmed and must be 1 to MaxNameLength runes.
func Rename(p Pet, name string) (Pet, bool) {
	name, ok := NormalizeName(name)
	if !ok || p.IsDead() {
		return p, false
	}
	next := p.Clone()
	next.Name = name
	return next, true
}

// RefillFeed restores the daily feed charges
func RefillFeed(p Pet) (Pet, bool) {
	if p.IsDead() {
		return p, false
	}
	next := p.Clone()
	next.FeedCount = DailyActionCount
	return next, true
}

// RefillPlay restores the daily play charges
func RefillPlay(p Pet) (Pet, bool) {
	if p.IsDead() {
		return p, false
	}
	next := p.Clone()
	next.PlayCount = DailyActionCount
	return next, true
}

// AddBonusXP grants XP from outside the normal actions, e.g. a completed mission
func AddBonusXP(p Pet, amount int, rules Rules) (Pet, bool) {
	if p.IsDead() {
		return p, false
	}
	next := p.Clone()
	applyXP(&next, amount, rules)
	return next, true
}

// DrawAnimal opens a gift box: one animal is drawn uniformly and joins the collection
func DrawAnimal(p Pet, rules Rules, rng Rand) (Pet, string, bool) {
	if p.IsDead() {
		return p, "", false
	}
	animal := Animals[rng.Intn(len(Animals))]
	next := p.Clone()
	next.CollectedAnimals = append(next.CollectedAnimals, animal)
	if !rules.EconomyEnabled && len(next.CollectedAnimals) > VisibleAnimalLimit {
		next.CollectedAnimals = next.CollectedAnimals[len(next.CollectedAnimals)-VisibleAnimalLimit:]
	}
	applyXP(&next, DrawAnimalXP, rules)
	return next, animal, true
}

// BuyItem spends coins on an upgrade. It only works with the economy enabled.
func BuyItem(p Pet, item Item, price int, rules Rules) (Pet, bool) {
	if !rules.EconomyEnabled || p.IsDead() || price < 0 || p.Coins < price {
		return p, false
	}
	next := p.Clone()
	switch item {
	case ItemDiaper:
		next.HasDiaper = true
	case ItemFood:
		next.FeedCount += AnimalFoodReward
	case ItemPlay:
		next.PlayCount += AnimalPlayReward
	default:
		return p, false
	}
	next.Coins -= price
	return next, true
}

// RefreshDailyCounts resets the feed and play charges when the calendar day changed
func RefreshDailyCounts(p Pet, now time.Time) (Pet, bool) {
	today := LocalDate(now)
	if p.LastCountReset == today {
		return p, false
	}
	next := p.Clone()
	next.FeedCount = DailyActionCount
	next.PlayCount = DailyActionCount
	next.LastCountReset = today
	return next, true
}
