package pet

import (
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"
)

// Testable time and random functions
var (
	TimeNow = func() time.Time { return time.Now() }
)

// Rand is the source of randomness for probabilistic events. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded pseudo-random source
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Rules selects between the two game variants. With the economy disabled there are no
// coins, no diaper, no animal effects, and ticks award passive XP instead.
type Rules struct {
	EconomyEnabled bool
}

// DefaultRules enables the full economy variant
func DefaultRules() Rules {
	return Rules{EconomyEnabled: true}
}

// Pet represents the virtual pet's persisted state
type Pet struct {
	Name             string   `json:"name"`
	Hunger           float64  `json:"hunger"`
	Happiness        float64  `json:"happiness"`
	Energy           float64  `json:"energy"`
	Health           float64  `json:"health"`
	Age              int      `json:"age"`
	Status           Status   `json:"status"`
	LastUpdate       int64    `json:"lastUpdate"` // Unix milliseconds
	FeedCount        int      `json:"feedCount"`
	PlayCount        int      `json:"playCount"`
	LastCountReset   string   `json:"lastCountReset"` // Local calendar date, YYYY-MM-DD
	Level            int      `json:"level"`
	XP               int      `json:"xp"`
	PoopCount        int      `json:"poopCount"`
	CollectedAnimals []string `json:"collectedAnimals"`
	Coins            int      `json:"coins"`
	HasDiaper        bool     `json:"hasDiaper"`
}

// NewPet creates a pet with the initial values
func NewPet(now time.Time) Pet {
	return Pet{
		Name:             DefaultPetName,
		Hunger:           MaxStat,
		Happiness:        MaxStat,
		Energy:           MaxStat,
		Health:           MaxStat,
		Status:           StatusAlive,
		LastUpdate:       now.UnixMilli(),
		FeedCount:        DailyActionCount,
		PlayCount:        DailyActionCount,
		LastCountReset:   LocalDate(now),
		Level:            1,
		CollectedAnimals: []string{},
	}
}

// LocalDate returns the calendar date of t in the local time zone
func LocalDate(t time.Time) string {
	return t.Local().Format(time.DateOnly)
}

// Clone returns a copy that shares no memory with p
func (p Pet) Clone() Pet {
	c := p
	c.CollectedAnimals = make([]string, len(p.CollectedAnimals))
	copy(c.CollectedAnimals, p.CollectedAnimals)
	return c
}

// XPThreshold returns the XP required to reach the next level
func (p Pet) XPThreshold() int {
	return p.Level * XPPerLevel
}

// IsDead reports whether the pet has reached the terminal status
func (p Pet) IsDead() bool {
	return p.Status == StatusDead
}

// CanAct reports whether the pet is awake and alive
func (p Pet) CanAct() bool {
	return p.Status == StatusAlive
}

// NormalizeName trims a candidate name and reports whether it is acceptable
func NormalizeName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", false
	}
	return name, true
}

// Sanitize forces every field back inside its invariant range. It is applied to
// records read from storage, which may have been edited by hand.
func (p *Pet) Sanitize() {
	if name, ok := NormalizeName(p.Name); ok {
		p.Name = name
	} else {
		p.Name = DefaultPetName
	}
	p.Hunger = clampStat(p.Hunger)
	p.Happiness = clampStat(p.Happiness)
	p.Energy = clampStat(p.Energy)
	p.Health = clampStat(p.Health)
	if !p.Status.Valid() {
		p.Status = StatusAlive
	}
	p.FeedCount = max(p.FeedCount, 0)
	p.PlayCount = max(p.PlayCount, 0)
	p.Coins = max(p.Coins, 0)
	p.PoopCount = min(max(p.PoopCount, 0), MaxPoop)
	p.normalizeXP()
	if p.CollectedAnimals == nil {
		p.CollectedAnimals = []string{}
	}
}

// clampStat bounds a vital to [MinStat, MaxStat] and rounds away float drift from the
// 0.1-sized deliver cost.
func clampStat(v float64) float64 {
	if math.IsNaN(v) {
		return MinStat
	}
	v = math.Round(v*10) / 10
	return math.Max(MinStat, math.Min(MaxStat, v))
}
