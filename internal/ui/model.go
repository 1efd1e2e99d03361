package ui

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"damasgochi/internal/engine"
	"damasgochi/internal/pet"
)

// Modal is an overlay that captures input
type Modal int

const (
	ModalNone Modal = iota
	ModalRename
	ModalPay
	ModalMission
	ModalGift
	ModalShop
)

// menu entries for a living pet
const (
	menuFeed = iota
	menuPlay
	menuDeliver
	menuClean
	menuSleep
	menuAuto
	menuRename
	menuShop
	menuQuit
)

// menu entries for a dead pet
const (
	deadMenuRevive = iota
	deadMenuReset
	deadMenuQuit
)

// shopItems is the order items are listed in the shop
var shopItems = []pet.Item{pet.ItemDiaper, pet.ItemFood, pet.ItemPlay}

// Model represents the game screen
type Model struct {
	Engine         *engine.Engine
	Choice         int
	Quitting       bool
	Modal          Modal
	PayFor         engine.Purchase
	Input          string
	InputError     string
	Gift           string
	ShopChoice     int
	Message        string
	MessageExpires time.Time
	Animation      Animation
}

type timerMsg struct {
	key engine.TimerKey
	gen uint64
}

type animTickMsg struct {
	started time.Time
}

// NewModel creates a game model around an initialized engine
func NewModel(e *engine.Engine) Model {
	return Model{Engine: e}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.schedule()
}

// schedule turns the engine's newly armed timers into tea.Tick commands
func (m Model) schedule() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.Engine.Pending() {
		t := t // per-iteration copy; go.mod targets go1.21 loop semantics
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return timerMsg{key: t.Key, gen: t.Gen}
		}))
	}
	return tea.Batch(cmds...)
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.Modal != ModalNone {
			return m.updateModal(msg)
		}
		// While an animation is playing, ignore inputs except quit keys
		if m.Animation.Action != pet.ActionNone {
			if msg.String() == "q" {
				return m.quit()
			}
			return m, nil
		}
		return m.updateMain(msg)

	case timerMsg:
		result, ok := m.Engine.Fire(msg.key, msg.gen)
		if ok {
			m.handleDelivery(result)
		}
		m.clampChoice()
		return m, m.schedule()

	case animTickMsg:
		// Drop ticks that belong to an older animation (e.g., if a new action started)
		if m.Animation.Action == pet.ActionNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	m.Engine.Stop()
	return m, tea.Quit
}

// clampChoice keeps the cursor inside the menu, which shrinks when the pet dies
func (m *Model) clampChoice() {
	last := len(m.menu(m.Engine.Snapshot().Pet.IsDead())) - 1
	m.Choice = min(max(m.Choice, 0), last)
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.Engine.Snapshot()
	dead := snap.Pet.IsDead()
	m.clampChoice()

	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		if m.Choice > 0 {
			m.Choice--
		}
		return m, nil
	case "down", "j":
		if m.Choice < len(m.menu(dead))-1 {
			m.Choice++
		}
		return m, nil
	case " ":
		// Space delivers, or stops auto-delivery while it is running
		if !snap.Pet.CanAct() {
			return m, nil
		}
		if snap.IsAutoDelivering {
			m.Engine.ToggleAutoDeliver()
			return m, m.schedule()
		}
		return m.deliver()
	case "enter":
		if dead {
			return m.selectDead()
		}
		return m.selectAlive()
	}
	return m, nil
}

func (m Model) selectAlive() (tea.Model, tea.Cmd) {
	snap := m.Engine.Snapshot()

	switch m.Choice {
	case menuFeed:
		if snap.Pet.FeedCount <= 0 && snap.Pet.CanAct() {
			m.openPay(engine.PurchaseRefillFeed)
			return m, nil
		}
		if !m.Engine.Feed() {
			m.setMessage("🍽️ Can't eat right now")
			return m, nil
		}
		m.setMessage("🍎 Yum!")
		return m.animate(pet.ActionFeed)
	case menuPlay:
		if snap.Pet.PlayCount <= 0 && snap.Pet.CanAct() {
			m.openPay(engine.PurchaseRefillPlay)
			return m, nil
		}
		if !m.Engine.Play() {
			m.setMessage("😴 Too tired to play...")
			return m, nil
		}
		m.setMessage("🎾 Wheee!")
		return m.animate(pet.ActionPlay)
	case menuDeliver:
		return m.deliver()
	case menuClean:
		if !m.Engine.CleanPoop() {
			m.setMessage("✨ Already clean")
			return m, nil
		}
		return m.animate(pet.ActionClean)
	case menuSleep:
		m.Engine.Sleep()
		if m.Engine.Snapshot().Pet.Status == pet.StatusSleeping {
			return m.animate(pet.ActionSleep)
		}
		m.setMessage("☀️ Good morning!")
		return m, m.schedule()
	case menuAuto:
		if !m.Engine.ToggleAutoDeliver() {
			m.setMessage("💤 Wake the pet up first")
		}
		return m, m.schedule()
	case menuRename:
		m.openModal(ModalRename)
		m.Input = snap.Pet.Name
		return m, nil
	case menuShop:
		if !m.Engine.Settings().Rules.EconomyEnabled {
			m.setMessage("🏪 The shop is closed")
			return m, nil
		}
		m.openModal(ModalShop)
		m.ShopChoice = 0
		return m, nil
	case menuQuit:
		return m.quit()
	}
	return m, nil
}

func (m Model) selectDead() (tea.Model, tea.Cmd) {
	switch m.Choice {
	case deadMenuRevive:
		m.openPay(engine.PurchaseRevive)
		return m, nil
	case deadMenuReset:
		m.Engine.Reset()
		m.Choice = 0
		m.setMessage("🐣 A new friend hatched!")
		return m, m.schedule()
	case deadMenuQuit:
		return m.quit()
	}
	return m, nil
}

func (m Model) deliver() (tea.Model, tea.Cmd) {
	result, ok := m.Engine.Deliver()
	if ok {
		m.handleDelivery(result)
	}
	return m, m.schedule()
}

// handleDelivery opens the overlay for a chance event. The mission wins when both fire.
func (m *Model) handleDelivery(result pet.DeliverResult) {
	if m.Modal != ModalNone {
		return
	}
	switch {
	case result.Special:
		m.openModal(ModalMission)
	case result.Gift:
		m.openModal(ModalGift)
		m.Gift = ""
	}
}

func (m Model) animate(action pet.Action) (tea.Model, tea.Cmd) {
	m.Animation = Animation{
		Action:    action,
		Frame:     0,
		StartTime: pet.TimeNow(),
	}
	return m, tea.Batch(m.schedule(), animTick(m.Animation.StartTime))
}

func (m *Model) openModal(modal Modal) {
	m.Modal = modal
	m.Input = ""
	m.InputError = ""
}

func (m *Model) openPay(what engine.Purchase) {
	m.openModal(ModalPay)
	m.PayFor = what
}

func (m *Model) closeModal() {
	m.Modal = ModalNone
	m.Input = ""
	m.InputError = ""
	m.Gift = ""
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Modal {
	case ModalGift:
		return m.updateGift(msg)
	case ModalShop:
		return m.updateShop(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.closeModal()
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if len(m.Input) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.Input)
			m.Input = m.Input[:len(m.Input)-size]
		}
		return m, nil
	case tea.KeySpace:
		m.Input += " "
		return m, nil
	case tea.KeyRunes:
		m.Input += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.Modal {
	case ModalRename:
		if !m.Engine.Rename(m.Input) {
			m.InputError = "Names need 1 to 10 characters"
			return m, nil
		}
		m.setMessage("📛 Nice to meet you, " + m.Engine.Snapshot().Pet.Name + "!")
	case ModalPay:
		if !m.Engine.RedeemPayment(m.Input, m.PayFor) {
			m.InputError = "Invalid code"
			return m, nil
		}
		switch m.PayFor {
		case engine.PurchaseRevive:
			m.Choice = 0
			m.setMessage("✨ Back to life!")
		case engine.PurchaseRefillFeed:
			m.setMessage("🍎 Meals refilled")
		case engine.PurchaseRefillPlay:
			m.setMessage("🎾 Play time refilled")
		}
	case ModalMission:
		if !m.Engine.RedeemMission(m.Input) {
			m.InputError = "That's not it..."
			return m, nil
		}
		m.setMessage("📜 Mission complete!")
	}
	m.closeModal()
	return m, m.schedule()
}

func (m Model) updateGift(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
		return m, nil
	case "enter", " ":
		if m.Gift != "" {
			m.closeModal()
			return m, nil
		}
		animal := m.Engine.DrawAnimal()
		if animal == "" {
			m.closeModal()
			return m, nil
		}
		m.Gift = animal
		return m, m.schedule()
	}
	return m, nil
}

func (m Model) updateShop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
		return m, nil
	case "up", "k":
		if m.ShopChoice > 0 {
			m.ShopChoice--
		}
	case "down", "j":
		if m.ShopChoice < len(shopItems)-1 {
			m.ShopChoice++
		}
	case "enter", " ":
		item := shopItems[m.ShopChoice]
		if !m.Engine.Buy(item) {
			m.InputError = "Not enough coins"
			return m, nil
		}
		m.InputError = ""
		m.setMessage("🛍️ Bought " + itemName(item))
		m.closeModal()
		return m, m.schedule()
	}
	return m, nil
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(3 * time.Second)
}
