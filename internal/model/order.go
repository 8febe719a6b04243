package model

import (
	"strings"
	"time"
)

type Channel string

const (
	ChannelWeb   Channel = "web"
	ChannelApp   Channel = "app"
	ChannelStore Channel = "store"
)

func (c Channel) String() string { return string(c) }

func (c Channel) Valid() bool {
	return c == ChannelWeb || c == ChannelApp || c == ChannelStore
}

// ParseChannel normalizes input. Returns (value, true) if valid; otherwise ("", false).
func ParseChannel(s string) (Channel, bool) {
	ch := Channel(strings.ToLower(strings.TrimSpace(s)))
	if ch.Valid() {
		return ch, true
	}
	return "", false
}

// Order is one purchase event tied to exactly one customer.
type Order struct {
	OrderID         string    `json:"order_id" db:"order_id"`
	CustomerID      string    `json:"customer_id" db:"customer_id"`
	OrderDate       time.Time `json:"order_date" db:"order_date"`
	Amount          float64   `json:"amount" db:"amount"`
	ProductCategory string    `json:"product_category" db:"product_category"`
	Channel         Channel   `json:"channel" db:"channel"`
}
