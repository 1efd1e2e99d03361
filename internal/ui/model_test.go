package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"damasgochi/internal/engine"
	"damasgochi/internal/pet"
	"damasgochi/internal/store"
)

// scriptedRand replays fixed values; once empty it never triggers a chance event
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

var fixedNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

var (
	keySpace     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestModel wires a model to an engine on a memory store holding p, or a new pet when p is nil
func newTestModel(t *testing.T, p *pet.Pet, rng *scriptedRand, opts ...engine.Option) Model {
	t.Helper()
	original := pet.TimeNow
	pet.TimeNow = fixedClock
	t.Cleanup(func() { pet.TimeNow = original })

	st := store.New(store.NewMemorySlot(), store.WithClock(fixedClock))
	if p != nil {
		if err := st.Save(context.Background(), *p); err != nil {
			t.Fatal(err)
		}
	}
	if rng == nil {
		rng = &scriptedRand{}
	}
	opts = append([]engine.Option{engine.WithClock(fixedClock), engine.WithRand(rng)}, opts...)
	e := engine.New(st, opts...)
	if err := e.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return NewModel(e)
}

func petWith(f func(p *pet.Pet)) *pet.Pet {
	p := pet.NewPet(fixedNow)
	f(&p)
	return &p
}

func press(m Model, keys ...tea.Msg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func choose(m Model, choice int) Model {
	m.Choice = choice
	return press(m, keyEnter)
}

func TestSpaceDelivers(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = press(m, keySpace)

	snap := m.Engine.Snapshot()
	if snap.Pet.XP != pet.DeliverXP {
		t.Errorf("Expected XP %d after delivery, got %d", pet.DeliverXP, snap.Pet.XP)
	}
	if snap.LastAction != pet.ActionDeliver {
		t.Errorf("Expected last action deliver, got %q", snap.LastAction)
	}
	if m.Animation.Action != pet.ActionNone {
		t.Error("Deliveries should not start a blocking animation")
	}
	if !strings.Contains(m.View(), "👕 +1 XP 💨") {
		t.Errorf("Expected delivery effect in view, got:\n%s", m.View())
	}
}

func TestSpaceIgnored(t *testing.T) {
	tests := []struct {
		name  string
		pet   *pet.Pet
		setup func(m Model) Model
	}{
		{
			name: "Rename modal open",
			setup: func(m Model) Model {
				return choose(m, menuRename)
			},
		},
		{
			name: "Pet asleep",
			pet:  petWith(func(p *pet.Pet) { p.Status = pet.StatusSleeping }),
		},
		{
			name: "Pet dead",
			pet: petWith(func(p *pet.Pet) {
				p.Status = pet.StatusDead
				p.Health = 0
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, tt.pet, nil)
			if tt.setup != nil {
				m = tt.setup(m)
			}
			m = press(m, keySpace)
			if xp := m.Engine.Snapshot().Pet.XP; xp != 0 {
				t.Errorf("Expected no delivery, got XP %d", xp)
			}
		})
	}
}

func TestSpaceStopsAutoDeliver(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = choose(m, menuAuto)
	if !m.Engine.Snapshot().IsAutoDelivering {
		t.Fatal("Expected auto-delivery to start")
	}
	if !strings.Contains(m.View(), "auto-delivering") {
		t.Error("Expected auto-delivery indicator in view")
	}

	m = press(m, keySpace)
	snap := m.Engine.Snapshot()
	if snap.IsAutoDelivering {
		t.Error("Expected space to stop auto-delivery")
	}
	if snap.Pet.XP != 0 {
		t.Errorf("Stopping auto-delivery should not deliver, got XP %d", snap.Pet.XP)
	}
}

func TestRename(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = choose(m, menuRename)
	if m.Modal != ModalRename || m.Input != pet.DefaultPetName {
		t.Fatalf("Expected rename modal prefilled with the name, got modal %d input %q", m.Modal, m.Input)
	}

	for range []rune(pet.DefaultPetName) {
		m = press(m, keyBackspace)
	}
	if m.Input != "" {
		t.Fatalf("Expected input cleared rune by rune, got %q", m.Input)
	}

	m = press(m, keyEnter)
	if m.Modal != ModalRename || m.InputError == "" {
		t.Error("Expected empty name to be rejected")
	}

	m = press(m, runes("Bori"), keySpace, runes("Jr"), keyEnter)
	if m.Modal != ModalNone {
		t.Error("Expected modal to close after rename")
	}
	if name := m.Engine.Snapshot().Pet.Name; name != "Bori Jr" {
		t.Errorf("Expected name %q, got %q", "Bori Jr", name)
	}

	m = choose(m, menuRename)
	m = press(m, runes("zzz"), keyEsc)
	if m.Modal != ModalNone || m.Engine.Snapshot().Pet.Name != "Bori Jr" {
		t.Error("Expected esc to cancel without renaming")
	}
}

func TestRefillNeedsCode(t *testing.T) {
	m := newTestModel(t, petWith(func(p *pet.Pet) { p.FeedCount = 0 }), nil)

	m = choose(m, menuFeed)
	if m.Modal != ModalPay || m.PayFor != engine.PurchaseRefillFeed {
		t.Fatalf("Expected refill prompt, got modal %d for %q", m.Modal, m.PayFor)
	}

	m = press(m, runes("0000"), keyEnter)
	if m.InputError != "Invalid code" || m.Modal != ModalPay {
		t.Errorf("Expected wrong code to be rejected, got %q", m.InputError)
	}
	if count := m.Engine.Snapshot().Pet.FeedCount; count != 0 {
		t.Errorf("Expected no refill, got %d feeds", count)
	}

	m = press(m, keyBackspace, keyBackspace, keyBackspace, keyBackspace, runes("1004"), keyEnter)
	if m.Modal != ModalNone {
		t.Error("Expected modal to close after payment")
	}
	if count := m.Engine.Snapshot().Pet.FeedCount; count != pet.DailyActionCount {
		t.Errorf("Expected %d feeds after refill, got %d", pet.DailyActionCount, count)
	}
	if !strings.Contains(m.View(), "Meals refilled") {
		t.Error("Expected refill message in view")
	}
}

func TestMission(t *testing.T) {
	m := newTestModel(t, nil, &scriptedRand{floats: []float64{0, 0.99}})

	m = press(m, keySpace)
	if m.Modal != ModalMission {
		t.Fatalf("Expected mission modal, got %d", m.Modal)
	}
	if !strings.Contains(m.View(), "해시는 최고다") {
		t.Error("Expected mission phrase in view")
	}

	m = press(m, runes("nope"), keyEnter)
	if m.InputError == "" || m.Engine.Snapshot().Pet.XP != pet.DeliverXP {
		t.Error("Expected wrong phrase to be rejected")
	}

	m = press(m, keyBackspace, keyBackspace, keyBackspace, keyBackspace)
	m = press(m, runes("해시는"), keySpace, runes("최고다"), keyEnter)
	if m.Modal != ModalNone {
		t.Error("Expected modal to close after the mission")
	}
	if xp := m.Engine.Snapshot().Pet.XP; xp != pet.DeliverXP+20 {
		t.Errorf("Expected XP %d, got %d", pet.DeliverXP+20, xp)
	}
}

func TestMissionWinsOverGift(t *testing.T) {
	m := newTestModel(t, nil, &scriptedRand{floats: []float64{0, 0}})
	m = press(m, keySpace)
	if m.Modal != ModalMission {
		t.Errorf("Expected mission modal when both events fire, got %d", m.Modal)
	}
}

func TestGift(t *testing.T) {
	m := newTestModel(t, nil, &scriptedRand{floats: []float64{0.99, 0}, ints: []int{5}})

	m = press(m, keySpace)
	if m.Modal != ModalGift || m.Gift != "" {
		t.Fatalf("Expected unopened gift modal, got modal %d gift %q", m.Modal, m.Gift)
	}

	m = press(m, keyEnter)
	if m.Gift != "🦊" {
		t.Fatalf("Expected a fox, got %q", m.Gift)
	}
	if !strings.Contains(m.View(), "+10 coins per minute") {
		t.Errorf("Expected the fox's effect in view, got:\n%s", m.View())
	}
	snap := m.Engine.Snapshot()
	if len(snap.Pet.CollectedAnimals) != 1 || snap.Pet.CollectedAnimals[0] != "🦊" {
		t.Errorf("Expected fox collected, got %v", snap.Pet.CollectedAnimals)
	}
	if snap.Pet.Level != 2 || !snap.ShowLevelUp {
		t.Errorf("Expected draw XP to level up, got level %d banner %v", snap.Pet.Level, snap.ShowLevelUp)
	}

	m = press(m, keyEnter)
	if m.Modal != ModalNone {
		t.Error("Expected second enter to close the gift")
	}
	if !strings.Contains(m.View(), "LEVEL UP! LV.2") {
		t.Errorf("Expected level-up banner, got:\n%s", m.View())
	}
}

func TestShop(t *testing.T) {
	m := newTestModel(t, petWith(func(p *pet.Pet) { p.Coins = 150 }), nil)

	m = choose(m, menuShop)
	if m.Modal != ModalShop {
		t.Fatalf("Expected shop modal, got %d", m.Modal)
	}

	m = press(m, keyEnter)
	if m.InputError != "Not enough coins" || m.Modal != ModalShop {
		t.Errorf("Expected diaper to be unaffordable, got %q", m.InputError)
	}

	m = press(m, keyDown, keyEnter)
	snap := m.Engine.Snapshot()
	if m.Modal != ModalNone {
		t.Error("Expected shop to close after a purchase")
	}
	if snap.Pet.Coins != 50 || snap.Pet.FeedCount != pet.DailyActionCount+pet.AnimalFoodReward {
		t.Errorf("Expected 50 coins and %d feeds, got %d and %d",
			pet.DailyActionCount+pet.AnimalFoodReward, snap.Pet.Coins, snap.Pet.FeedCount)
	}
}

func TestShopClosedWithoutEconomy(t *testing.T) {
	settings := engine.DefaultSettings()
	settings.Rules = pet.Rules{EconomyEnabled: false}
	m := newTestModel(t, nil, nil, engine.WithSettings(settings))

	m = choose(m, menuShop)
	if m.Modal != ModalNone {
		t.Error("Expected the shop to stay closed")
	}
	if strings.Contains(m.View(), "Coins:") {
		t.Error("Expected no coins without the economy")
	}
}

func TestDeadPetRevive(t *testing.T) {
	m := newTestModel(t, petWith(func(p *pet.Pet) {
		p.Status = pet.StatusDead
		p.Health = 0
	}), nil)

	if !strings.Contains(m.View(), "passed away") {
		t.Errorf("Expected dead view, got:\n%s", m.View())
	}

	m = choose(m, deadMenuRevive)
	if m.Modal != ModalPay || m.PayFor != engine.PurchaseRevive {
		t.Fatalf("Expected revive prompt, got modal %d for %q", m.Modal, m.PayFor)
	}

	m = press(m, runes(" 1004 "), keyEnter)
	snap := m.Engine.Snapshot()
	if snap.Pet.Status != pet.StatusAlive || snap.Pet.Health != pet.MaxStat {
		t.Errorf("Expected revived pet, got %+v", snap.Pet)
	}
}

func TestMenuCursorFollowsDeadMenu(t *testing.T) {
	m := newTestModel(t, petWith(func(p *pet.Pet) {
		p.Status = pet.StatusDead
		p.Health = 0
	}), nil)

	m.Choice = menuShop
	m = press(m, timerMsg{key: engine.TimerDecay, gen: 999})
	if m.Choice != deadMenuQuit {
		t.Fatalf("Expected cursor on the last dead menu entry, got %d", m.Choice)
	}
	if !strings.Contains(m.View(), "> Quit") {
		t.Errorf("Expected cursor drawn on Quit, got:\n%s", m.View())
	}

	m.Choice = menuShop
	m = press(m, runes("k"))
	if m.Choice != deadMenuReset {
		t.Errorf("Expected up to move from the clamped entry, got %d", m.Choice)
	}

	m.Choice = menuShop
	m = press(m, keyEnter)
	if !m.Quitting {
		t.Error("Expected enter on the clamped entry to quit")
	}
}

func TestDeadPetReset(t *testing.T) {
	m := newTestModel(t, petWith(func(p *pet.Pet) {
		p.Status = pet.StatusDead
		p.Health = 0
		p.Level = 7
	}), nil)

	m = choose(m, deadMenuReset)
	snap := m.Engine.Snapshot()
	if snap.Pet.IsDead() || snap.Pet.Level != 1 {
		t.Errorf("Expected a new pet, got %+v", snap.Pet)
	}
}

func TestAnimationBlocksInput(t *testing.T) {
	m := newTestModel(t, nil, nil)

	m = choose(m, menuFeed)
	if m.Animation.Action != pet.ActionFeed {
		t.Fatalf("Expected feed animation, got %q", m.Animation.Action)
	}
	xp := m.Engine.Snapshot().Pet.XP

	m = press(m, keySpace)
	if got := m.Engine.Snapshot().Pet.XP; got != xp {
		t.Errorf("Expected input ignored during animation, XP went %d -> %d", xp, got)
	}

	m = press(m, animTickMsg{started: fixedNow.Add(-time.Second)})
	if m.Animation.Frame != 0 {
		t.Error("Expected stale animation tick to be dropped")
	}

	for i := 0; i < AnimationTotalFrames(pet.ActionFeed); i++ {
		m = press(m, animTickMsg{started: m.Animation.StartTime})
	}
	if m.Animation.Action != pet.ActionNone {
		t.Error("Expected animation to finish")
	}
}

func TestTimerMessages(t *testing.T) {
	m := newTestModel(t, nil, nil)

	var decay engine.Timer
	for _, tm := range m.Engine.Pending() {
		if tm.Key == engine.TimerDecay {
			decay = tm
		}
	}
	if decay.Key == "" {
		t.Fatal("Expected a decay timer after Init")
	}

	m = press(m, timerMsg{key: decay.Key, gen: decay.Gen})
	if hunger := m.Engine.Snapshot().Pet.Hunger; hunger != pet.MaxStat-pet.HungerDecayPerTick {
		t.Errorf("Expected one decay tick, got hunger %.1f", hunger)
	}

	m = press(m, timerMsg{key: decay.Key, gen: decay.Gen + 100})
	if hunger := m.Engine.Snapshot().Pet.Hunger; hunger != pet.MaxStat-pet.HungerDecayPerTick {
		t.Errorf("Expected stale timer to be ignored, got hunger %.1f", hunger)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, nil, nil)

	view := m.View()
	for _, want := range []string{pet.DefaultPetName, "LV.1", "XP:", "0%", "Hunger:", "Coins:", "Feed", "Shop"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}

	m = press(m, runes("q"))
	if !m.Quitting || m.View() != "Thanks for playing!\n" {
		t.Errorf("Expected goodbye view, got %q", m.View())
	}
}

func TestRenderStatsCard(t *testing.T) {
	p := pet.NewPet(fixedNow)
	p.CollectedAnimals = []string{"🐻"}
	p.PoopCount = 2

	card := RenderStatsCard(p, pet.DefaultRules())
	for _, want := range []string{p.Name, "Coins:", "💩💩", "+3 feeds per minute"} {
		if !strings.Contains(card, want) {
			t.Errorf("Expected %q in stats card:\n%s", want, card)
		}
	}
	if strings.Contains(RenderStatsCard(p, pet.Rules{}), "Coins:") {
		t.Error("Expected no coins without the economy")
	}
}
