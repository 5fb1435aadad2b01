package repository

import (
	"context"
	"time"

	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// reportPageSize is the fixed page size for report row listings.
const reportPageSize = 50

// ReportRow is one detail-level row of the report projection. Name columns
// come from the snapshots written at transaction time, so historical reports
// are immune to later renames.
type ReportRow struct {
	TransactionID    string
	TxnDate          time.Time
	StaffName        string
	CounterpartyName string
	ProductName      string
	Qty              int
	UnitPrice        decimal.Decimal
	Amount           decimal.Decimal
	TransactionTotal decimal.Decimal
}

// SummaryRow aggregates one transaction kind over a date range.
type SummaryRow struct {
	TotalTransactions int64
	TotalQty          int64
	TotalAmount       decimal.Decimal
}

// ReportRepository serves the read-only reporting projection. It never
// writes; the ledger owns all mutations.
type ReportRepository interface {
	Rows(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) ([]ReportRow, int64, error)
	Summary(ctx context.Context, kind model.TransactionKind, dateFrom, dateTo string) (*SummaryRow, error)
	PageSize() int
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) PageSize() int { return reportPageSize }

func (r *reportRepo) base(ctx context.Context, kind model.TransactionKind) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transaction_details AS d").
		Joins("JOIN stock_transactions t ON t.id = d.transaction_id").
		Where("t.kind = ?", kind)
}

func (r *reportRepo) Rows(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) ([]ReportRow, int64, error) {
	q := r.base(ctx, kind)

	if filter.StaffID != "" {
		q = q.Where("t.staff_id = ?", filter.StaffID)
	}
	if filter.CounterpartyID != "" {
		q = q.Where("t.counterparty_id = ?", filter.CounterpartyID)
	}
	if filter.ProductID != "" {
		q = q.Where("d.product_id = ?", filter.ProductID)
	}
	if filter.DateFrom != "" {
		q = q.Where("t.txn_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("t.txn_date <= ?", filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ReportRow
	offset := (filter.Page - 1) * reportPageSize
	err := q.Select(`t.id AS transaction_id, t.txn_date, t.staff_name,
			t.counterparty_name, d.product_name, d.qty,
			d.price AS unit_price, d.amount, t.total AS transaction_total`).
		Order("t.txn_date DESC").
		Offset(offset).Limit(reportPageSize).
		Scan(&rows).Error
	return rows, total, err
}

func (r *reportRepo) Summary(ctx context.Context, kind model.TransactionKind, dateFrom, dateTo string) (*SummaryRow, error) {
	q := r.base(ctx, kind)
	if dateFrom != "" {
		q = q.Where("t.txn_date >= ?", dateFrom)
	}
	if dateTo != "" {
		q = q.Where("t.txn_date <= ?", dateTo)
	}

	var row SummaryRow
	err := q.Select(`COUNT(DISTINCT t.id) AS total_transactions,
			COALESCE(SUM(d.qty), 0) AS total_qty,
			COALESCE(SUM(d.amount), 0) AS total_amount`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
