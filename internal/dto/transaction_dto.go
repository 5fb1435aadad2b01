package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ───────────────────────────────────────────────────────────

// TransactionFilter is bound from the query string of GET /v1/imports and
// GET /v1/orders. Absent filters are no-ops; present filters compose with AND.
type TransactionFilter struct {
	Search         string `form:"search"`          // free text over counterparty/staff name snapshots
	StaffID        string `form:"staff_id"`        // exact match
	CounterpartyID string `form:"counterparty_id"` // exact match (supplier or customer id)
	DateFrom       string `form:"date_from"`       // inclusive, YYYY-MM-DD
	DateTo         string `form:"date_to"`         // inclusive, YYYY-MM-DD
	Page           int    `form:"page,default=1" validate:"min=1"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type TransactionItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Qty       int             `json:"qty"        validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"      validate:"min=0"`
}

type CreateTransactionRequest struct {
	TxnDate        string                   `json:"date"            validate:"required,datetime=2006-01-02"`
	CounterpartyID string                   `json:"counterparty_id" validate:"required,uuid"`
	StaffID        string                   `json:"staff_id"        validate:"required,uuid"`
	Items          []TransactionItemRequest `json:"items"           validate:"required,min=1,dive"`
}

// UpdateTransactionRequest distinguishes an omitted items key (stock
// untouched) from a present one (full replacement) via the pointer.
type UpdateTransactionRequest struct {
	TxnDate        *string                   `json:"date"            validate:"omitempty,datetime=2006-01-02"`
	CounterpartyID *string                   `json:"counterparty_id" validate:"omitempty,uuid"`
	StaffID        *string                   `json:"staff_id"        validate:"omitempty,uuid"`
	Items          *[]TransactionItemRequest `json:"items"           validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransactionDetailResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"` // snapshot at transaction time
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

type TransactionResponse struct {
	ID               string                      `json:"id"`
	Kind             string                      `json:"kind"`
	TxnDate          string                      `json:"date"`
	CounterpartyID   string                      `json:"counterparty_id"`
	CounterpartyName string                      `json:"counterparty_name"` // snapshot
	StaffID          string                      `json:"staff_id"`
	StaffName        string                      `json:"staff_name"` // snapshot
	Total            decimal.Decimal             `json:"total"`
	Items            []TransactionDetailResponse `json:"items"`
	Counterparty     *PartnerResponse            `json:"counterparty,omitempty"`
	Staff            *StaffResponse              `json:"staff,omitempty"`
	CreatedAt        string                      `json:"created_at"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
