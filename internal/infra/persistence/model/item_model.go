package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel is the GORM-specific struct for the 'items' table.
type ItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string     `gorm:"type:varchar(255);not null"`
	SKU         *string    `gorm:"type:varchar(64);uniqueIndex"`
	Quantity    int        `gorm:"not null;default:0"`
	Price       float64    `gorm:"type:decimal(12,2);not null;default:0"`
	Category    string     `gorm:"type:varchar(128);not null;default:'General'"`
	Description string     `gorm:"type:text"`
	ImageURL    string     `gorm:"type:varchar(1024)"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}
