package engine

import (
	"context"
	"log"
	"time"

	"damasgochi/internal/pet"
)

// Store persists the pet record between sessions
type Store interface {
	Load(ctx context.Context) (pet.Pet, error)
	Save(ctx context.Context, p pet.Pet) error
}

// Settings tunes the simulation. Durations are wall-clock.
type Settings struct {
	Rules               pet.Rules
	TickInterval        time.Duration
	AutoDeliverInterval time.Duration
	LevelUpBanner       time.Duration
	ActionFlash         time.Duration
	DeliverFlash        time.Duration
	Gates               Gates
	Prices              map[pet.Item]int
}

// DefaultSettings returns the economy variant at normal speed
func DefaultSettings() Settings {
	return Settings{
		Rules:               pet.DefaultRules(),
		TickInterval:        pet.TickInterval,
		AutoDeliverInterval: 3 * time.Second,
		LevelUpBanner:       3 * time.Second,
		ActionFlash:         1500 * time.Millisecond,
		DeliverFlash:        300 * time.Millisecond,
		Gates:               DefaultGates(),
		Prices: map[pet.Item]int{
			pet.ItemDiaper: 500,
			pet.ItemFood:   100,
			pet.ItemPlay:   100,
		},
	}
}

// Snapshot is what the presentation layer renders
type Snapshot struct {
	Pet              pet.Pet
	LastAction       pet.Action
	DeliverEffectKey int // Bumped on every delivery so repeated effects restart
	ShowLevelUp      bool
	IsAutoDelivering bool
	Initialized      bool
}

// Engine owns the live pet. Every mutation computes the next state from the current
// one, saves it and reports transient signals. It is not safe for concurrent use;
// callers drive it from a single loop.
type Engine struct {
	store    Store
	settings Settings
	rng      pet.Rand
	now      func() time.Time

	pet              pet.Pet
	lastAction       pet.Action
	deliverEffectKey int
	showLevelUp      bool
	autoDeliver      bool
	initialized      bool
	stopped          bool
	readOnly         bool // Load failed, so nothing is saved
	ticks            int

	timers *timers
}

// Option configures an Engine
type Option func(*Engine)

// WithSettings replaces DefaultSettings
func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// WithRand injects the random source used for poop, delivery events and draws
func WithRand(r pet.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an engine backed by store. Call Init before using it.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		settings: DefaultSettings(),
		now:      func() time.Time { return pet.TimeNow() },
		timers:   newTimers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = pet.NewRand(e.now().UnixNano())
	}
	return e
}

// Init loads the saved pet and starts the decay timer. When the store cannot be read
// the error is returned and the engine runs a fresh pet that is never saved.
func (e *Engine) Init(ctx context.Context) error {
	p, err := e.store.Load(ctx)
	if err != nil {
		log.Printf("Error loading state, changes will not be saved: %v", err)
	}
	e.pet = p
	e.readOnly = err != nil
	e.initialized = true
	e.stopped = false
	e.Sync()
	return err
}

// Stop cancels every timer. Fired timers are ignored afterwards.
func (e *Engine) Stop() {
	e.stopped = true
	e.timers.cancelAll()
}

// Snapshot returns a copy of the current state and signals
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Pet:              e.pet.Clone(),
		LastAction:       e.lastAction,
		DeliverEffectKey: e.deliverEffectKey,
		ShowLevelUp:      e.showLevelUp,
		IsAutoDelivering: e.autoDeliver,
		Initialized:      e.initialized,
	}
}

// Settings returns the engine's configuration
func (e *Engine) Settings() Settings {
	return e.settings
}

// Price returns the shop price of item
func (e *Engine) Price(item pet.Item) (int, bool) {
	price, ok := e.settings.Prices[item]
	return price, ok
}

// Pending hands over timers armed since the last call
func (e *Engine) Pending() []Timer {
	return e.timers.drain()
}

// Sync starts or stops the periodic timers to match the current state
func (e *Engine) Sync() {
	if e.stopped || !e.initialized {
		return
	}
	e.timers.ensure(TimerDecay, !e.pet.IsDead(), e.settings.TickInterval)
	e.timers.ensure(TimerAutoDeliver, e.autoDeliver && e.pet.CanAct(), e.settings.AutoDeliverInterval)
}

// Fire runs the task behind a timer. It reports false for stale or unknown timers.
// When the firing was an automatic delivery, its outcome is returned.
func (e *Engine) Fire(key TimerKey, gen uint64) (pet.DeliverResult, bool) {
	if e.stopped || !e.timers.current(key, gen) {
		return pet.DeliverResult{}, false
	}

	var result pet.DeliverResult
	switch key {
	case TimerDecay:
		e.tick()
	case TimerAutoDeliver:
		result, _ = e.Deliver()
	case TimerLevelUp:
		e.timers.cancel(key)
		e.showLevelUp = false
	case TimerActionFlash:
		e.timers.cancel(key)
		e.lastAction = pet.ActionNone
	default:
		return result, false
	}

	e.Sync()
	if e.timers.current(key, gen) {
		e.timers.rearm(key, e.interval(key))
	}
	return result, true
}

// arm (re)starts an expiry timer unless the engine has been stopped
func (e *Engine) arm(key TimerKey, delay time.Duration) {
	if e.stopped {
		return
	}
	e.timers.arm(key, delay)
}

func (e *Engine) interval(key TimerKey) time.Duration {
	if key == TimerAutoDeliver {
		return e.settings.AutoDeliverInterval
	}
	return e.settings.TickInterval
}

func (e *Engine) tick() {
	e.ticks++
	next := pet.Tick(e.pet, pet.TickInput{
		Now:            e.now(),
		Rand:           e.rng,
		MinuteBoundary: e.ticks%pet.TicksPerMinute == 0,
		Rules:          e.settings.Rules,
	})
	e.commit(next, pet.ActionNone)
}

// commit installs next as the live state, persists it and raises signals
func (e *Engine) commit(next pet.Pet, action pet.Action) {
	prev := e.pet
	next.LastUpdate = max(next.LastUpdate, e.now().UnixMilli())
	e.pet = next

	if !e.readOnly {
		if err := e.store.Save(context.Background(), next); err != nil {
			log.Printf("Error saving state: %v", err)
		}
	}

	if action != pet.ActionNone {
		e.lastAction = action
		flash := e.settings.ActionFlash
		if action == pet.ActionDeliver {
			e.deliverEffectKey++
			flash = e.settings.DeliverFlash
		}
		e.arm(TimerActionFlash, flash)
	}

	if next.Level > prev.Level {
		log.Printf("%s reached level %d", next.Name, next.Level)
		e.showLevelUp = true
		e.arm(TimerLevelUp, e.settings.LevelUpBanner)
	}
	if next.Status != prev.Status {
		log.Printf("%s is now %s", next.Name, next.Status)
	}

	e.Sync()
}

// Feed gives the pet a meal
func (e *Engine) Feed() bool {
	next, ok := pet.Feed(e.pet, e.settings.Rules)
	if !ok {
		return false
	}
	log.Printf("Fed pet. Hunger is now %.1f, %d feeds left", next.Hunger, next.FeedCount)
	e.commit(next, pet.ActionFeed)
	return true
}

// Play plays with the pet
func (e *Engine) Play() bool {
	next, ok := pet.Play(e.pet, e.settings.Rules)
	if !ok {
		return false
	}
	log.Printf("Played with pet. Happiness is now %.1f, Energy is now %.1f", next.Happiness, next.Energy)
	e.commit(next, pet.ActionPlay)
	return true
}

// Deliver sends the pet on a delivery. The result says whether a special mission or
// gift box turned up; it is neutral when the delivery was refused.
func (e *Engine) Deliver() (pet.DeliverResult, bool) {
	next, result, ok := pet.Deliver(e.pet, e.settings.Rules, e.rng)
	if !ok {
		return pet.DeliverResult{}, false
	}
	if result.Special {
		log.Printf("%s %s", next.Name, pet.GetEventDefinition(pet.EventSpecialMission).Message)
	}
	if result.Gift {
		log.Printf("%s %s", next.Name, pet.GetEventDefinition(pet.EventGiftBox).Message)
	}
	e.commit(next, pet.ActionDeliver)
	return result, true
}

// CleanPoop removes one poop
func (e *Engine) CleanPoop() bool {
	next, ok := pet.CleanPoop(e.pet, e.settings.Rules)
	if !ok {
		return false
	}
	e.commit(next, pet.ActionClean)
	return true
}

// Sleep toggles between sleeping and awake
func (e *Engine) Sleep() bool {
	next, ok := pet.ToggleSleep(e.pet)
	if !ok {
		return false
	}
	e.commit(next, pet.ActionSleep)
	return true
}

// Revive brings the pet back at full vitals
func (e *Engine) Revive() bool {
	e.commit(pet.Revive(e.pet, e.now()), pet.ActionNone)
	return true
}

// Reset replaces the pet with a new one and turns auto-delivery off
func (e *Engine) Reset() bool {
	e.autoDeliver = false
	e.ticks = 0
	e.commit(pet.Reset(e.now()), pet.ActionNone)
	return true
}

// Rename changes the pet's name
func (e *Engine) Rename(name string) bool {
	next, ok := pet.Rename(e.pet, name)
	if !ok {
		return false
	}
	log.Printf("Renamed %s to %s", e.pet.Name, next.Name)
	e.commit(next, pet.ActionNone)
	return true
}

// RefillFeed restores the daily feeds
func (e *Engine) RefillFeed() bool {
	next, ok := pet.RefillFeed(e.pet)
	if !ok {
		return false
	}
	e.commit(next, pet.ActionNone)
	return true
}

// RefillPlay restores the daily plays
func (e *Engine) RefillPlay() bool {
	next, ok := pet.RefillPlay(e.pet)
	if !ok {
		return false
	}
	e.commit(next, pet.ActionNone)
	return true
}

// AddBonusXP grants extra XP
func (e *Engine) AddBonusXP(amount int) bool {
	next, ok := pet.AddBonusXP(e.pet, amount, e.settings.Rules)
	if !ok {
		return false
	}
	e.commit(next, pet.ActionNone)
	return true
}

// DrawAnimal opens a gift box and returns the animal inside, or "" when refused
func (e *Engine) DrawAnimal() string {
	next, animal, ok := pet.DrawAnimal(e.pet, e.settings.Rules, e.rng)
	if !ok {
		return ""
	}
	log.Printf("Gift box contained %s", animal)
	e.commit(next, pet.ActionNone)
	return animal
}

// BuyItem spends price coins on item
func (e *Engine) BuyItem(item pet.Item, price int) bool {
	next, ok := pet.BuyItem(e.pet, item, price, e.settings.Rules)
	if !ok {
		return false
	}
	log.Printf("Bought %s for %d coins", item, price)
	e.commit(next, pet.ActionNone)
	return true
}

// Buy purchases item at its configured shop price
func (e *Engine) Buy(item pet.Item) bool {
	price, ok := e.Price(item)
	if !ok {
		return false
	}
	return e.BuyItem(item, price)
}

// ToggleAutoDeliver flips automatic delivery. Starting it needs an awake, living pet;
// stopping it always works.
func (e *Engine) ToggleAutoDeliver() bool {
	if !e.autoDeliver && !e.pet.CanAct() {
		return false
	}
	e.autoDeliver = !e.autoDeliver
	log.Printf("Auto-deliver: %t", e.autoDeliver)
	e.Sync()
	return true
}
