package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind selects the counterparty table and the sign of the stock
// delta. Imports and orders are otherwise the same workflow.
type TransactionKind string

const (
	KindImport TransactionKind = "import" // supplier counterparty, qty += n
	KindOrder  TransactionKind = "order"  // customer counterparty, qty -= n
)

// Direction returns the signed stock effect of a committed detail row.
func (k TransactionKind) Direction() int {
	if k == KindOrder {
		return -1
	}
	return 1
}

// Valid reports whether k is one of the two known kinds.
func (k TransactionKind) Valid() bool {
	return k == KindImport || k == KindOrder
}

// StockTransaction is the header of a stock-moving transaction.
// CounterpartyName and StaffName are deliberate denormalized snapshots taken
// at creation/replacement time — reports must show the names as they were at
// transaction time, independent of later renames.
type StockTransaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind             TransactionKind `gorm:"type:varchar(10);not null;index"`
	TxnDate          time.Time       `gorm:"type:date;not null;index"`
	CounterpartyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CounterpartyName string          `gorm:"not null"`
	StaffID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffName        string          `gorm:"not null"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Details []TransactionDetail `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	Staff   *Staff              `gorm:"foreignKey:StaffID"`
}

func (StockTransaction) TableName() string { return "stock_transactions" }

// TransactionDetail is one line item, exclusively owned by its header.
// Amount is always recomputed as Qty × Price, never client-supplied.
type TransactionDetail struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"not null"` // snapshot at write time
	Qty           int             `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
