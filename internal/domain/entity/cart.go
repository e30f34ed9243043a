package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one entry in a shopping cart. Price, name and image are
// snapshots taken when the line was added; Item carries the live catalog
// record when the cart is returned populated.
type CartLine struct {
	ItemID   uuid.UUID `json:"item"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Item     *Item     `json:"itemDetails,omitempty"`
}

// Cart is a per-user aggregate of cart lines with a derived total. A given
// item appears in at most one line; quantities are merged on add. The cart
// is created lazily and cleared, never deleted, after a successful order.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user"`
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart creates an empty cart owned by the given user.
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		UserID: userID,
		Items:  []CartLine{},
		Total:  0,
	}
}

// Recalculate recomputes the derived total from the lines. It must run
// before every persist.
func (c *Cart) Recalculate() {
	total := 0.0
	for _, line := range c.Items {
		total += line.Price * float64(line.Quantity)
	}
	c.Total = RoundMoney(total)
}

// LineIndex returns the index of the line holding itemID, or -1.
func (c *Cart) LineIndex(itemID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			return i
		}
	}

	return -1
}

// AddLine merges quantity into an existing line for the item, or appends a
// new line snapshotting the item's current price, name and image.
func (c *Cart) AddLine(item *Item, quantity int) {
	if idx := c.LineIndex(item.ID); idx >= 0 {
		c.Items[idx].Quantity += quantity
	} else {
		c.Items = append(c.Items, CartLine{
			ItemID:   item.ID,
			Quantity: quantity,
			Price:    item.Price,
			Name:     item.Name,
			ImageURL: item.ImageURL,
		})
	}
	c.Recalculate()
}

// SetLineQuantity replaces the quantity of an existing line. A quantity of
// zero removes the line. Returns false when no line holds the item.
func (c *Cart) SetLineQuantity(itemID uuid.UUID, quantity int) bool {
	idx := c.LineIndex(itemID)
	if idx < 0 {
		return false
	}

	if quantity == 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = quantity
	}
	c.Recalculate()

	return true
}

// RemoveLine drops the line holding itemID if present. Removing an absent
// item is not an error.
func (c *Cart) RemoveLine(itemID uuid.UUID) {
	if idx := c.LineIndex(itemID); idx >= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}
	c.Recalculate()
}

// Clear empties all lines and zeroes the total.
func (c *Cart) Clear() {
	c.Items = []CartLine{}
	c.Total = 0
}
