package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Staff is an employee who registers imports and orders. Transactions
// snapshot the full name at creation time, so renames here never rewrite
// historical records.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string    `gorm:"index;not null"`
	Gender    string    `gorm:"type:varchar(10)"`
	BirthDate *time.Time
	Position  string          `gorm:"not null"`
	Salary    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stopped   bool            `gorm:"not null;default:false"`
	Photo     *string
	Status    string `gorm:"type:varchar(10);not null;default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the historical plural used by the original schema.
func (Staff) TableName() string { return "staffs" }
