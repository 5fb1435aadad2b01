package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs fn inside one atomic unit of work. Every write fn performs
// through the *gorm.DB it receives commits or rolls back together — the
// stock ledger relies on this for header+details+quantity-delta atomicity.
//
// Tests substitute an in-memory implementation that snapshots stub state and
// restores it when fn fails.
type TxManager interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct{ db *gorm.DB }

func NewTxManager(db *gorm.DB) TxManager { return &gormTxManager{db: db} }

func (m *gormTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
