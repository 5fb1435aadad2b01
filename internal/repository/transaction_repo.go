package repository

import (
	"context"

	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// transactionPageSize is the fixed page size for transaction listings.
const transactionPageSize = 10

// TransactionRepository persists stock transaction headers and their detail
// rows. Methods taking a *gorm.DB run inside the caller's transaction.
type TransactionRepository interface {
	CreateTx(tx *gorm.DB, t *model.StockTransaction) error
	UpdateHeaderTx(tx *gorm.DB, t *model.StockTransaction) error
	CreateDetailTx(tx *gorm.DB, d *model.TransactionDetail) error
	DeleteDetailsTx(tx *gorm.DB, transactionID uuid.UUID) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	FindByID(ctx context.Context, kind model.TransactionKind, id uuid.UUID) (*model.StockTransaction, error)
	List(ctx context.Context, kind model.TransactionKind, filter dto.TransactionFilter) ([]model.StockTransaction, int64, error)

	PageSize() int
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) PageSize() int { return transactionPageSize }

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.StockTransaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) UpdateHeaderTx(tx *gorm.DB, t *model.StockTransaction) error {
	// Details are written separately; omit the association to avoid GORM
	// re-saving rows the ledger already replaced.
	return tx.Omit("Details").Save(t).Error
}

func (r *transactionRepo) CreateDetailTx(tx *gorm.DB, d *model.TransactionDetail) error {
	return tx.Create(d).Error
}

func (r *transactionRepo) DeleteDetailsTx(tx *gorm.DB, transactionID uuid.UUID) error {
	return tx.Where("transaction_id = ?", transactionID).Delete(&model.TransactionDetail{}).Error
}

func (r *transactionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.StockTransaction{}, id).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, kind model.TransactionKind, id uuid.UUID) (*model.StockTransaction, error) {
	var t model.StockTransaction
	err := r.db.WithContext(ctx).
		Preload("Details.Product").Preload("Staff").
		Where("kind = ?", kind).
		First(&t, id).Error
	return &t, err
}

func (r *transactionRepo) List(ctx context.Context, kind model.TransactionKind, filter dto.TransactionFilter) ([]model.StockTransaction, int64, error) {
	var txns []model.StockTransaction
	var total int64

	q := r.db.WithContext(ctx).Model(&model.StockTransaction{}).Where("kind = ?", kind)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("counterparty_name ILIKE ? OR staff_name ILIKE ?", like, like)
	}
	if filter.StaffID != "" {
		q = q.Where("staff_id = ?", filter.StaffID)
	}
	if filter.CounterpartyID != "" {
		q = q.Where("counterparty_id = ?", filter.CounterpartyID)
	}
	if filter.DateFrom != "" {
		q = q.Where("txn_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("txn_date <= ?", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * transactionPageSize
	err := q.Preload("Details.Product").Preload("Staff").
		Order("created_at DESC").
		Offset(offset).Limit(transactionPageSize).
		Find(&txns).Error
	return txns, total, err
}
