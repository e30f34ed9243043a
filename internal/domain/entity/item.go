package entity

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to catalog items created without a category.
const DefaultCategory = "General"

// Item is a catalog product. The catalog is the sole owner of live stock
// counts; Quantity is mutated only through explicit admin updates or the
// repository's atomic conditional decrement.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	SKU         string     `json:"sku,omitempty"`
	Quantity    int        `json:"quantity"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Normalize trims string fields and clamps numeric fields to the catalog
// invariants: quantity is a non-negative integer, price a non-negative
// amount with two-decimal precision, category defaults to "General".
func (i *Item) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.SKU = strings.TrimSpace(i.SKU)
	i.Category = strings.TrimSpace(i.Category)
	if i.Category == "" {
		i.Category = DefaultCategory
	}
	if i.Quantity < 0 {
		i.Quantity = 0
	}
	i.Price = RoundMoney(math.Max(0, i.Price))
}

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
