package domain

import "time"

// ShoppingItem represents a single entry on a shopping list.
type ShoppingItem struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	QuantityDescr string    `json:"quantity_description"`
	Bought        bool      `json:"bought"`
	ListID        int64     `json:"-"`
	CreatedAt     time.Time `json:"created"`
	UpdatedAt     time.Time `json:"updated"`
}
