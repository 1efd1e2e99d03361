package pet

// AnimalEffect is the bonus a collected animal grants
type AnimalEffect string

const (
	EffectNone  AnimalEffect = ""
	EffectXP1   AnimalEffect = "xp1"   // +1 XP per delivery
	EffectXP2   AnimalEffect = "xp2"   // +2 XP per delivery
	EffectXP3   AnimalEffect = "xp3"   // +3 XP per delivery
	EffectCoins AnimalEffect = "coins" // +coins every minute
	EffectFood  AnimalEffect = "food"  // +feed charges every minute
	EffectPlay  AnimalEffect = "play"  // +play charges every minute
)

// Animals is the fixed set of symbols a gift box can contain, in draw order
var Animals = []string{
	"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯",
	"🦁", "🐮", "🐷", "🐸", "🐵", "🐣", "🐧", "🦆", "🦋",
}

var animalEffects = map[string]AnimalEffect{
	"🐭": EffectXP1,
	"🐹": EffectXP1,
	"🐰": EffectXP1,
	"🐣": EffectXP1,
	"🐸": EffectXP1,
	"🦆": EffectXP1,
	"🐶": EffectXP2,
	"🐱": EffectXP2,
	"🐧": EffectXP2,
	"🐵": EffectXP2,
	"🐯": EffectXP3,
	"🦁": EffectXP3,
	"🦊": EffectCoins,
	"🐮": EffectCoins,
	"🐷": EffectCoins,
	"🐻": EffectFood,
	"🐼": EffectFood,
	"🐨": EffectPlay,
	"🦋": EffectPlay,
}

// GetAnimalEffect returns the effect of an animal symbol
func GetAnimalEffect(animal string) AnimalEffect {
	return animalEffects[animal]
}

// GetEffectDescription returns a short label for the UI
func GetEffectDescription(effect AnimalEffect) string {
	switch effect {
	case EffectXP1:
		return "+1 XP per delivery"
	case EffectXP2:
		return "+2 XP per delivery"
	case EffectXP3:
		return "+3 XP per delivery"
	case EffectCoins:
		return "+10 coins per minute"
	case EffectFood:
		return "+3 feeds per minute"
	case EffectPlay:
		return "+3 plays per minute"
	default:
		return "No effect"
	}
}

// DeliveryBonus sums the per-delivery XP of every collected animal
func DeliveryBonus(animals []string, rules Rules) int {
	if !rules.EconomyEnabled {
		return 0
	}
	bonus := 0
	for _, animal := range animals {
		switch animalEffects[animal] {
		case EffectXP1:
			bonus++
		case EffectXP2:
			bonus += 2
		case EffectXP3:
			bonus += 3
		}
	}
	return bonus
}

// applyAnimalRewards grants the per-minute passive rewards of every collected animal
func applyAnimalRewards(p *Pet) {
	for _, animal := range p.CollectedAnimals {
		switch animalEffects[animal] {
		case EffectCoins:
			p.Coins += AnimalCoinReward
		case EffectFood:
			p.FeedCount += AnimalFoodReward
		case EffectPlay:
			p.PlayCount += AnimalPlayReward
		}
	}
}
