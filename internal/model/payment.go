package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment records money received against an order header. Payments never
// touch product quantities.
// Status: "pending" | "completed" | "cancelled"
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayDate   time.Time       `gorm:"type:date;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method    string          `gorm:"type:varchar(20);not null"` // cash | card | transfer
	Note      *string
	Status    string `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Order *StockTransaction `gorm:"foreignKey:OrderID"`
}
