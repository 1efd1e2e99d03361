package pet

import "time"

// Game constants
const (
	DefaultPetName = "다마고치"
	MaxNameLength  = 10
	MaxStat        = 100.0
	MinStat        = 0.0

	DailyActionCount = 3 // Feed/play charges restored each calendar day
	MaxPoop          = 3
	XPPerLevel       = 100 // Threshold is level * XPPerLevel
	MaxLevel         = 1_000_000
	LevelUpRestore   = 30  // Added to every vital on level-up
	LevelUpCoins     = 100

	// Tick cadence
	TickInterval   = 3 * time.Second
	TicksPerMinute = 20

	// Stat change rates (per tick)
	HungerDecayPerTick     = 2
	HappinessDecayPerTick  = 1
	EnergyDecayPerTick     = 1
	EnergyRecoveryPerTick  = 10
	HealthDecayPerTick     = 5
	PoopHealthDecayPerTick = 8
	HealthRecoveryPerTick  = 1
	WellFedThreshold       = 80 // Hunger and energy above this slowly restore health
	PassiveXPPerTick       = 5  // Economy-off only
	PassiveXPHealthFloor   = 50

	PoopChance       = 0.05
	DiaperPoopChance = 0.025
	PoopHungerFloor  = 50 // Pre-tick hunger must exceed this to spawn poop

	// Catch-up rates (per elapsed minute while away)
	CatchUpHungerMinutes = 2
	CatchUpEnergyMinutes = 5

	// Action effects
	FeedHungerIncrease    = 15
	FeedHappinessIncrease = 2
	FeedHealthIncrease    = 30 // Economy only
	FeedXP                = 15

	PlayHappinessIncrease = 20
	PlayEnergyDecrease    = 15
	PlayMinEnergy         = 10
	PlayXP                = 30

	DeliverXP            = 1
	DeliverEnergyCost    = 0.1
	DeliverSpecialChance = 0.01
	DeliverGiftChance    = 0.005

	CleanXP                = 50
	CleanHappinessIncrease = 5

	DrawAnimalXP       = 100
	VisibleAnimalLimit = 5 // Economy-off keeps only the newest animals

	// Passive animal rewards (per simulated minute)
	AnimalCoinReward = 10
	AnimalFoodReward = 3
	AnimalPlayReward = 3

	// Status emojis
	StatusEmojiDead     = "💀"
	StatusEmojiSleeping = "💤"
	StatusEmojiSick     = "🤒"
	StatusEmojiHungry   = "🤤"
	StatusEmojiSad      = "😢"
	StatusEmojiHappy    = "😊"
	StatusEmojiNeutral  = "🐥"
	PoopEmoji           = "💩"
)

// Status is the lifecycle state of the pet
type Status string

const (
	StatusAlive    Status = "alive"
	StatusSleeping Status = "sleeping"
	StatusDead     Status = "dead"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusAlive, StatusSleeping, StatusDead:
		return true
	}
	return false
}

// Item is something that can be bought in the shop
type Item string

const (
	ItemDiaper Item = "diaper"
	ItemFood   Item = "food"
	ItemPlay   Item = "play"
)

// Action names the last player action, used for presentation only
type Action string

const (
	ActionNone    Action = ""
	ActionFeed    Action = "feed"
	ActionPlay    Action = "play"
	ActionSleep   Action = "sleep"
	ActionDeliver Action = "deliver"
	ActionClean   Action = "clean"
)
