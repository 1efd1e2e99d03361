package engine

import (
	"log"
	"strings"
)

// Gates holds the literal codes the payment and mission prompts compare against.
// They are game content, not a security mechanism.
type Gates struct {
	PaymentCode   string
	MissionPhrase string
	MissionBonus  int
}

// DefaultGates returns the stock codes
func DefaultGates() Gates {
	return Gates{
		PaymentCode:   "1004",
		MissionPhrase: "해시는 최고다",
		MissionBonus:  20,
	}
}

// Purchase is something the payment prompt can unlock
type Purchase string

const (
	PurchaseRevive     Purchase = "revive"
	PurchaseRefillFeed Purchase = "refill-feed"
	PurchaseRefillPlay Purchase = "refill-play"
)

// RedeemPayment runs the purchase when code matches the payment code
func (e *Engine) RedeemPayment(code string, what Purchase) bool {
	if strings.TrimSpace(code) != e.settings.Gates.PaymentCode {
		log.Printf("Payment code rejected for %s", what)
		return false
	}
	switch what {
	case PurchaseRevive:
		return e.Revive()
	case PurchaseRefillFeed:
		return e.RefillFeed()
	case PurchaseRefillPlay:
		return e.RefillPlay()
	default:
		return false
	}
}

// RedeemMission grants the mission bonus when answer matches the mission phrase
func (e *Engine) RedeemMission(answer string) bool {
	if strings.TrimSpace(answer) != strings.TrimSpace(e.settings.Gates.MissionPhrase) {
		log.Printf("Mission answer rejected")
		return false
	}
	return e.AddBonusXP(e.settings.Gates.MissionBonus)
}
