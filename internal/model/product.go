package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item with a running quantity on hand. Qty is mutated
// ONLY through the stock ledger (imports add, orders subtract) via atomic
// `qty + ?` updates inside the transaction that writes the detail rows.
type Product struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code string    `gorm:"uniqueIndex;not null"`
	Name string    `gorm:"index;not null"`
	// Qty may go negative when an order exceeds on-hand stock; the ledger
	// does not enforce sufficiency.
	Qty         int             `gorm:"not null;default:0"`
	ImportPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// MinQty is the low-stock alert threshold.
	MinQty     int `gorm:"not null;default:5"`
	Image      *string
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	BrandID    *uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"type:varchar(10);not null;default:'active'"` // active | inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Brand    *Brand    `gorm:"foreignKey:BrandID"`
}
