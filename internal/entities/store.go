package entities

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusDelivered OrderStatus = "delivered"
)

type Product struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"index;size:256" json:"name"`
	SKU        string    `gorm:"uniqueIndex;size:64" json:"sku,omitempty"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Order keeps nullable references so that deleting the product or the user
// nulls the reference instead of dropping the order row.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Reference string      `gorm:"uniqueIndex;size:36" json:"reference"`
	ProductID *uint       `gorm:"index" json:"product_id,omitempty"`
	Product   *Product    `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product,omitempty"`
	UserID    *uint       `gorm:"index" json:"user_id,omitempty"`
	User      *User       `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Status    OrderStatus `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (Order) TableName() string {
	return "orders"
}
