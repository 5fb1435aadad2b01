package dto

import "github.com/shopspring/decimal"

// ReportFilter is shared by the import and sales report endpoints.
type ReportFilter struct {
	StaffID        string `form:"staff_id"`
	CounterpartyID string `form:"counterparty_id"`
	ProductID      string `form:"product_id"`
	DateFrom       string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo         string `form:"date_to"   validate:"omitempty,datetime=2006-01-02"`
	Page           int    `form:"page,default=1" validate:"min=1"`
}

// ReportRow is one detail-level row of the import/sales report projection.
// Names come from the header/detail snapshot columns, not live joins.
type ReportRow struct {
	TransactionID    string          `json:"transaction_id"`
	TxnDate          string          `json:"date"`
	StaffName        string          `json:"staff_name"`
	CounterpartyName string          `json:"counterparty_name"`
	ProductName      string          `json:"product_name"`
	Qty              int             `json:"qty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionTotal decimal.Decimal `json:"transaction_total"`
}

type ReportResponse struct {
	Data  []ReportRow `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// SummaryResponse aggregates a date range of one transaction kind.
type SummaryResponse struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalQty          int64           `json:"total_qty"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}
