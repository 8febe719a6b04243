package model

import (
	"strings"
	"time"
)

type BuyingBehavior string

const (
	BehaviorImpulseBuyer  BuyingBehavior = "impulse_buyer"
	BehaviorResearcher    BuyingBehavior = "researcher"
	BehaviorBargainHunter BuyingBehavior = "bargain_hunter"
	BehaviorLoyal         BuyingBehavior = "loyal"
	BehaviorSeasonal      BuyingBehavior = "seasonal"
)

var BuyingBehaviors = []BuyingBehavior{
	BehaviorImpulseBuyer,
	BehaviorResearcher,
	BehaviorBargainHunter,
	BehaviorLoyal,
	BehaviorSeasonal,
}

func (b BuyingBehavior) String() string { return string(b) }

func (b BuyingBehavior) Valid() bool {
	for _, v := range BuyingBehaviors {
		if b == v {
			return true
		}
	}
	return false
}

// ParseBuyingBehavior normalizes input; empty => researcher (the dashboard's
// fallback archetype). Returns (value, true) if valid; otherwise (researcher, false).
func ParseBuyingBehavior(s string) (BuyingBehavior, bool) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return BehaviorResearcher, true
	}
	b := BuyingBehavior(raw)
	if b.Valid() {
		return b, true
	}
	return BehaviorResearcher, false
}

// Customer is one synthetic account. Created once per generation run and never
// mutated afterwards.
type Customer struct {
	CustomerID           string         `json:"customer_id" db:"customer_id"`
	Name                 string         `json:"name" db:"name"`
	Email                string         `json:"email" db:"email"`
	Segment              Segment        `json:"segment" db:"segment"`
	Interests            []string       `json:"interests"`
	LastContactDate      time.Time      `json:"last_contact_date" db:"last_contact_date"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	EngagementScore      int            `json:"engagement_score" db:"engagement_score"`
	PreferredContactTime string         `json:"preferred_contact_time" db:"preferred_contact_time"`
	PainPoints           []string       `json:"pain_points"`
	BuyingBehavior       BuyingBehavior `json:"buying_behavior" db:"buying_behavior"`
	ResponseRate         float64        `json:"response_rate" db:"response_rate"`
	LifetimeValue        float64        `json:"lifetime_value" db:"lifetime_value"`
}
