package pet

import "fmt"

// GetStatus returns the mood emoji for the pet
func GetStatus(p Pet) string {
	switch {
	case p.Status == StatusDead:
		return StatusEmojiDead
	case p.Status == StatusSleeping:
		return StatusEmojiSleeping
	case p.Health < 30:
		return StatusEmojiSick
	case p.Hunger < 30:
		return StatusEmojiHungry
	case p.Happiness < 30:
		return StatusEmojiSad
	case p.Happiness > 80:
		return StatusEmojiHappy
	default:
		return StatusEmojiNeutral
	}
}

// GetStatusWithLabel returns status with text labels for the UI
func GetStatusWithLabel(p Pet) string {
	status := GetStatus(p)

	switch status {
	case StatusEmojiDead:
		return status + " Dead"
	case StatusEmojiSleeping:
		return status + " Sleeping"
	case StatusEmojiSick:
		return status + " Sick"
	case StatusEmojiHungry:
		return status + " Hungry"
	case StatusEmojiSad:
		return status + " Sad"
	case StatusEmojiHappy:
		return status + " Happy"
	default:
		return status + " Okay"
	}
}

// GetLevelLabel returns the level line shown above the stat bars
func GetLevelLabel(p Pet) string {
	return fmt.Sprintf("LV.%d  XP %d/%d", p.Level, p.XP, p.XPThreshold())
}
