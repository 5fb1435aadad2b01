package dto

import "github.com/shopspring/decimal"

type CreatePaymentRequest struct {
	OrderID string          `json:"order_id" validate:"required,uuid"`
	PayDate string          `json:"pay_date" validate:"required,datetime=2006-01-02"`
	Amount  decimal.Decimal `json:"amount"   validate:"required"`
	Method  string          `json:"method"   validate:"required,oneof=cash card transfer"`
	Note    *string         `json:"note"     validate:"omitempty,max=255"`
	Status  string          `json:"status"   validate:"omitempty,oneof=pending completed cancelled"`
}

type UpdatePaymentRequest struct {
	PayDate *string          `json:"pay_date" validate:"omitempty,datetime=2006-01-02"`
	Amount  *decimal.Decimal `json:"amount"`
	Method  *string          `json:"method"   validate:"omitempty,oneof=cash card transfer"`
	Note    *string          `json:"note"     validate:"omitempty,max=255"`
	Status  *string          `json:"status"   validate:"omitempty,oneof=pending completed cancelled"`
}

type PaymentResponse struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	PayDate string          `json:"pay_date"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
	Note    *string         `json:"note,omitempty"`
	Status  string          `json:"status"`
}

// PaymentSummaryResponse breaks down payment totals by status.
type PaymentSummaryResponse struct {
	TotalPending   decimal.Decimal `json:"total_pending"`
	TotalCompleted decimal.Decimal `json:"total_completed"`
	TotalCancelled decimal.Decimal `json:"total_cancelled"`
	Count          int64           `json:"count"`
}

// OrderPaymentStatusResponse compares an order total against its completed
// payments. Status: "unpaid" | "partial" | "paid"
type OrderPaymentStatusResponse struct {
	OrderID    string          `json:"order_id"`
	OrderTotal decimal.Decimal `json:"order_total"`
	Paid       decimal.Decimal `json:"paid"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
}
