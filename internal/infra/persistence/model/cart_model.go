package model

import (
	"time"

	"github.com/google/uuid"
)

// CartModel is the GORM-specific struct for the 'carts' table. One cart per
// user, enforced by the unique index on user_id.
type CartModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Total     float64         `gorm:"type:decimal(12,2);not null;default:0"`
	Lines     []CartLineModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartLineModel is the GORM-specific struct for the 'cart_lines' table.
// Price, name and image are snapshots taken when the line was added.
type CartLineModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CartID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity int       `gorm:"not null"`
	Price    float64   `gorm:"type:decimal(12,2);not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	ImageURL string    `gorm:"type:varchar(1024)"`
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
