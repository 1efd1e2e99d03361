package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"damasgochi/internal/pet"
)

// StatsModel is a simple Bubble Tea model for displaying stats
type StatsModel struct {
	Pet   pet.Pet
	Rules pet.Rules
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	return RenderStatsCard(m.Pet, m.Rules) + "\nPress ESC, click, or any key to close..."
}

// RenderStatsCard draws a boxed summary of the pet
func RenderStatsCard(p pet.Pet, rules pet.Rules) string {
	bar := func(value float64) string {
		filled := int(value) / 20
		return strings.Repeat("█", filled) + strings.Repeat("░", 5-filled)
	}

	status := pet.GetStatusWithLabel(p)
	poop := "None"
	if p.PoopCount > 0 {
		poop = strings.Repeat(pet.PoopEmoji, p.PoopCount)
	}

	var s strings.Builder
	s.WriteString("╔════════════════════════════════════╗\n")
	s.WriteString(fmt.Sprintf("║  %s %s\n", pet.GetStatus(p), p.Name))
	s.WriteString("╠════════════════════════════════════╣\n")
	s.WriteString(fmt.Sprintf("║  Level:     %s\n", pet.GetLevelLabel(p)))
	s.WriteString(fmt.Sprintf("║  Status:    %s\n", status))
	s.WriteString("║\n")
	s.WriteString(fmt.Sprintf("║  Hunger:    [%s] %5.1f\n", bar(p.Hunger), p.Hunger))
	s.WriteString(fmt.Sprintf("║  Happiness: [%s] %5.1f\n", bar(p.Happiness), p.Happiness))
	s.WriteString(fmt.Sprintf("║  Energy:    [%s] %5.1f\n", bar(p.Energy), p.Energy))
	s.WriteString(fmt.Sprintf("║  Health:    [%s] %5.1f\n", bar(p.Health), p.Health))
	s.WriteString("║\n")
	s.WriteString(fmt.Sprintf("║  Meals:     %d left today\n", p.FeedCount))
	s.WriteString(fmt.Sprintf("║  Plays:     %d left today\n", p.PlayCount))
	s.WriteString(fmt.Sprintf("║  Poop:      %s\n", poop))
	if rules.EconomyEnabled {
		diaper := "No"
		if p.HasDiaper {
			diaper = "Yes"
		}
		s.WriteString(fmt.Sprintf("║  Coins:     %d\n", p.Coins))
		s.WriteString(fmt.Sprintf("║  Diaper:    %s\n", diaper))
	}
	if len(p.CollectedAnimals) > 0 {
		s.WriteString("║  Friends:\n")
		for _, animal := range p.CollectedAnimals {
			s.WriteString(fmt.Sprintf("║    %s %s\n", animal, pet.GetEffectDescription(pet.GetAnimalEffect(animal))))
		}
	}
	s.WriteString("╚════════════════════════════════════╝\n")

	return s.String()
}

// DisplayStats shows the stats display until a key is pressed
func DisplayStats(p pet.Pet, rules pet.Rules) error {
	program := tea.NewProgram(StatsModel{Pet: p, Rules: rules}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run stats display: %w", err)
	}
	return nil
}
