package pet

// Event type constants
const (
	EventSpecialMission = "special_mission"
	EventGiftBox        = "gift_box"
)

// EventDefinition describes a chance event that a delivery can trigger
type EventDefinition struct {
	Type    string
	Emoji   string
	Message string
	Chance  float64
}

// GetEventDefinitions returns all delivery events in sampling order
func GetEventDefinitions() []EventDefinition {
	return []EventDefinition{
		{
			Type:    EventSpecialMission,
			Emoji:   "📜",
			Message: "received a special mission!",
			Chance:  DeliverSpecialChance,
		},
		{
			Type:    EventGiftBox,
			Emoji:   "🎁",
			Message: "found a gift box!",
			Chance:  DeliverGiftChance,
		},
	}
}

// GetEventDefinition returns the definition for a given event type
func GetEventDefinition(eventType string) *EventDefinition {
	for _, def := range GetEventDefinitions() {
		if def.Type == eventType {
			return &def
		}
	}
	return nil
}

// DeliverResult reports which chance events fired on a delivery. Both are sampled
// independently; the presentation layer decides how to react.
type DeliverResult struct {
	Special bool
	Gift    bool
}

// RollDeliverEvents samples every delivery event once
func RollDeliverEvents(rng Rand) DeliverResult {
	var result DeliverResult
	for _, def := range GetEventDefinitions() {
		fired := rng.Float64() < def.Chance
		switch def.Type {
		case EventSpecialMission:
			result.Special = fired
		case EventGiftBox:
			result.Gift = fired
		}
	}
	return result
}
