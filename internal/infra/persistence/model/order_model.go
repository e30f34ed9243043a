package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel is the GORM-specific struct for the 'orders' table. The
// shipping address and payment result are flattened into prefixed columns.
type OrderModel struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index"`
	User   *UserModel `gorm:"foreignKey:UserID"`
	Email  string     `gorm:"type:varchar(255);not null"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	ShippingFirstName  string `gorm:"type:varchar(255);not null"`
	ShippingLastName   string `gorm:"type:varchar(255);not null"`
	ShippingEmail      string `gorm:"type:varchar(255);not null"`
	ShippingAddress    string `gorm:"type:varchar(1024)"`
	ShippingCity       string `gorm:"type:varchar(255)"`
	ShippingPostalCode string `gorm:"type:varchar(32)"`
	ShippingCountry    string `gorm:"type:varchar(128);not null;default:'United States'"`

	ItemsPrice    float64 `gorm:"type:decimal(12,2);not null;default:0"`
	TaxPrice      float64 `gorm:"type:decimal(12,2);not null;default:0"`
	ShippingPrice float64 `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrice    float64 `gorm:"type:decimal(12,2);not null;default:0"`

	Status      string `gorm:"type:varchar(32);not null;default:'pending';index"`
	IsPaid      bool   `gorm:"not null;default:false"`
	PaidAt      *time.Time
	IsShipped   bool `gorm:"not null;default:false"`
	ShippedAt   *time.Time
	IsDelivered bool `gorm:"not null;default:false"`
	DeliveredAt *time.Time
	IsCancelled bool `gorm:"not null;default:false"`
	CancelledAt *time.Time

	PaymentMethod      string `gorm:"type:varchar(64);not null;default:'Stripe'"`
	PaymentID          string `gorm:"type:varchar(255)"`
	PaymentStatus      string `gorm:"type:varchar(64)"`
	PaymentUpdateTime  string `gorm:"type:varchar(64)"`
	PaymentEmail       string `gorm:"type:varchar(255)"`
	CancellationReason string `gorm:"type:varchar(1024)"`
	RefundedAt         *time.Time
	RefundReason       string `gorm:"type:varchar(1024)"`
	TrackingNumber     string `gorm:"type:varchar(255)"`
	Carrier            string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// Each row is an immutable snapshot of one ordered line.
type OrderItemModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Quantity int       `gorm:"not null"`
	Price    float64   `gorm:"type:decimal(12,2);not null"`
	ImageURL string    `gorm:"type:varchar(1024)"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
