package repository

import (
	"context"

	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	List(ctx context.Context, status string) ([]model.Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error)
	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumByStatus returns the amount total per payment status plus row count.
	SumByStatus(ctx context.Context) (map[string]decimal.Decimal, int64, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *paymentRepo) List(ctx context.Context, status string) ([]model.Payment, error) {
	var payments []model.Payment
	q := r.db.WithContext(ctx).Order("pay_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("pay_date ASC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) Update(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *paymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Payment{}, id).Error
}

func (r *paymentRepo) SumByStatus(ctx context.Context) (map[string]decimal.Decimal, int64, error) {
	type row struct {
		Status string
		Sum    decimal.Decimal
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select("status, COALESCE(SUM(amount), 0) AS sum, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	var count int64
	for _, r := range rows {
		sums[r.Status] = r.Sum
		count += r.N
	}
	return sums, count, nil
}
