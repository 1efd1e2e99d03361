package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"damasgochi/internal/engine"
	"damasgochi/internal/pet"
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menu    lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	banner  lipgloss.Style
	effect  lipgloss.Style
	modal   lipgloss.Style
	err     lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(36),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(36),

	menu: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	banner: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFD700")).
		Padding(0, 1),

	effect: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7DD3FC")),

	modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF75B5")).
		Padding(1, 2).
		Width(40),

	err: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF0000")),
}

var (
	aliveMenu = []string{"Feed", "Play", "Deliver", "Clean", "Sleep / Wake", "Auto-deliver", "Rename", "Shop", "Quit"}
	deadMenu  = []string{"Revive", "Adopt a new pet", "Quit"}
)

func (m Model) menu(dead bool) []string {
	if dead {
		return deadMenu
	}
	return aliveMenu
}

func itemName(item pet.Item) string {
	switch item {
	case pet.ItemDiaper:
		return "🧷 Diaper (less poop)"
	case pet.ItemFood:
		return "🍎 3 extra meals"
	case pet.ItemPlay:
		return "🎾 3 extra plays"
	default:
		return string(item)
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}
	snap := m.Engine.Snapshot()
	if !snap.Initialized {
		return "Loading...\n"
	}
	if m.Modal != ModalNone {
		return m.renderModal(snap)
	}
	if snap.Pet.IsDead() {
		return m.deadView(snap)
	}

	// Show animation if one is active
	if m.Animation.Action != pet.ActionNone {
		return m.renderAnimation(snap)
	}

	sections := []string{
		renderTitle(snap.Pet),
		"",
		m.renderStats(snap),
		"",
		gameStyles.status.Render(fmt.Sprintf("Status: %s", pet.GetStatusWithLabel(snap.Pet))),
	}

	if snap.ShowLevelUp {
		sections = append(sections, "", gameStyles.banner.Render(fmt.Sprintf("🎉 LEVEL UP! LV.%d 🎉", snap.Pet.Level)))
	}
	if snap.LastAction == pet.ActionDeliver {
		xp := pet.DeliverXP + pet.DeliveryBonus(snap.Pet.CollectedAnimals, m.Engine.Settings().Rules)
		sections = append(sections, "", gameStyles.effect.Render(fmt.Sprintf("👕 +%d XP 💨", xp)))
	}
	if msg := m.activeMessage(); msg != "" {
		sections = append(sections, "", gameStyles.status.Render(msg))
	}

	helpText := "arrows to move • enter to select • space to deliver • q to quit"
	if snap.IsAutoDelivering {
		helpText = "🤖 auto-delivering • space to stop • q to quit"
	}

	sections = append(sections,
		"",
		m.renderMenu(false),
		"",
		gameStyles.status.Render(helpText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderTitle(p pet.Pet) string {
	mood := pet.GetStatus(p)
	return gameStyles.title.Render(mood + " " + p.Name + " " + mood)
}

func (m Model) activeMessage() string {
	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		return m.Message
	}
	return ""
}

func makeBar(value float64) string {
	filled := int(value) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func (m Model) renderStats(snap engine.Snapshot) string {
	p := snap.Pet
	rules := m.Engine.Settings().Rules

	lines := []string{
		pet.GetLevelLabel(p),
		fmt.Sprintf("%-10s [%s] %4.0f%%", "XP:", makeBar(pet.XPProgress(p)*100), pet.XPProgress(p)*100),
		fmt.Sprintf("%-10s [%s] %5.1f", "Hunger:", makeBar(p.Hunger), p.Hunger),
		fmt.Sprintf("%-10s [%s] %5.1f", "Happiness:", makeBar(p.Happiness), p.Happiness),
		fmt.Sprintf("%-10s [%s] %5.1f", "Energy:", makeBar(p.Energy), p.Energy),
		fmt.Sprintf("%-10s [%s] %5.1f", "Health:", makeBar(p.Health), p.Health),
		fmt.Sprintf("%-10s 🍎 x%d  🎾 x%d", "Charges:", p.FeedCount, p.PlayCount),
	}
	if p.PoopCount > 0 {
		lines = append(lines, fmt.Sprintf("%-10s %s", "Poop:", strings.Repeat(pet.PoopEmoji, p.PoopCount)))
	}
	if rules.EconomyEnabled {
		coins := fmt.Sprintf("%-10s 🪙 %d", "Coins:", p.Coins)
		if p.HasDiaper {
			coins += "  🧷"
		}
		lines = append(lines, coins)
	}
	if len(p.CollectedAnimals) > 0 {
		lines = append(lines, fmt.Sprintf("%-10s %s", "Friends:", strings.Join(p.CollectedAnimals, "")))
	}

	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func (m Model) renderMenu(dead bool) string {
	var menuItems []string
	for i, choice := range m.menu(dead) {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, gameStyles.menu.Render(fmt.Sprintf("%s %s", cursor, choice)))
	}

	return gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
}

func (m Model) renderAnimation(snap engine.Snapshot) string {
	frame := GetAnimationFrame(m.Animation)

	animStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(1, 2)

	sections := []string{
		renderTitle(snap.Pet),
		"",
		animStyle.Render(frame),
	}

	if snap.ShowLevelUp {
		sections = append(sections, "", gameStyles.banner.Render(fmt.Sprintf("🎉 LEVEL UP! LV.%d 🎉", snap.Pet.Level)))
	}
	if msg := m.activeMessage(); msg != "" {
		sections = append(sections, "", gameStyles.status.Render(msg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderModal(snap engine.Snapshot) string {
	var lines []string

	switch m.Modal {
	case ModalRename:
		lines = append(lines,
			gameStyles.title.Render("📛 New name"),
			"",
			"> "+m.Input+"_",
			"",
			"enter to save • esc to cancel",
		)
	case ModalPay:
		lines = append(lines, gameStyles.title.Render(payTitle(m.PayFor)), "")
		switch m.PayFor {
		case engine.PurchaseRevive:
			lines = append(lines, snap.Pet.Name+" crossed the rainbow bridge...", "Won't you bring them back?")
		case engine.PurchaseRefillFeed:
			lines = append(lines, snap.Pet.Name+" is starving!", "Please feed them soon!")
		case engine.PurchaseRefillPlay:
			lines = append(lines, snap.Pet.Name+" is bored and gloomy...", "Please play together!")
		}
		lines = append(lines, "", "code> "+m.Input+"_", "", "enter to confirm • esc to cancel")
	case ModalMission:
		lines = append(lines,
			gameStyles.banner.Render("✨ Special bonus mission! ✨"),
			"",
			"Type this phrase exactly:",
			gameStyles.title.Render(m.Engine.Settings().Gates.MissionPhrase),
			"",
			"> "+m.Input+"_",
			"",
			"enter to confirm • esc to close",
		)
	case ModalGift:
		if m.Gift == "" {
			lines = append(lines,
				gameStyles.banner.Render("🎁 A gift has arrived! 🎁"),
				"",
				"enter to open • esc to leave it",
			)
		} else {
			lines = append(lines,
				gameStyles.banner.Render("Congratulations! ✨"),
				"",
				fmt.Sprintf("%s joined your friends!", m.Gift),
			)
			if m.Engine.Settings().Rules.EconomyEnabled {
				lines = append(lines, pet.GetEffectDescription(pet.GetAnimalEffect(m.Gift)))
			}
			lines = append(lines, "", "enter to close")
		}
	case ModalShop:
		lines = append(lines,
			gameStyles.title.Render("🏪 Shop"),
			fmt.Sprintf("🪙 %d coins", snap.Pet.Coins),
			"",
		)
		for i, item := range shopItems {
			cursor := " "
			if m.ShopChoice == i {
				cursor = ">"
			}
			price, _ := m.Engine.Price(item)
			lines = append(lines, fmt.Sprintf("%s %-22s %4d", cursor, itemName(item), price))
		}
		lines = append(lines, "", "enter to buy • esc to leave")
	}

	if m.InputError != "" {
		lines = append(lines, "", gameStyles.err.Render(m.InputError))
	}

	return gameStyles.modal.Render(strings.Join(lines, "\n"))
}

func payTitle(what engine.Purchase) string {
	switch what {
	case engine.PurchaseRevive:
		return "💖 Enter the revive code"
	case engine.PurchaseRefillFeed:
		return "🍎 Refill meals"
	case engine.PurchaseRefillPlay:
		return "🎾 Refill play time"
	default:
		return "Enter code"
	}
}

func (m Model) deadView(snap engine.Snapshot) string {
	sections := []string{
		gameStyles.title.Render(pet.StatusEmojiDead + " " + snap.Pet.Name + " " + pet.StatusEmojiDead),
		"",
		gameStyles.status.Render("Your pet has passed away..."),
		gameStyles.status.Render(fmt.Sprintf("They reached level %d.", snap.Pet.Level)),
	}
	if msg := m.activeMessage(); msg != "" {
		sections = append(sections, "", gameStyles.status.Render(msg))
	}
	sections = append(sections,
		"",
		m.renderMenu(true),
		"",
		gameStyles.status.Render("arrows to move • enter to select • q to quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}
