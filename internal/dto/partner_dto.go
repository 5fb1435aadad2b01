package dto

import "github.com/shopspring/decimal"

// ─── Supplier / Customer ─────────────────────────────────────────────────────

type CreatePartnerRequest struct {
	Name    string  `json:"name"    validate:"required,max=100"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type UpdatePartnerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=100"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Active  *bool   `json:"active"`
}

type PartnerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}

// ─── Staff ───────────────────────────────────────────────────────────────────

type CreateStaffRequest struct {
	FullName  string          `json:"full_name"  validate:"required,max=100"`
	Gender    string          `json:"gender"     validate:"omitempty,oneof=male female other"`
	BirthDate *string         `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Position  string          `json:"position"   validate:"required,max=100"`
	Salary    decimal.Decimal `json:"salary"     validate:"min=0"`
	Photo     *string         `json:"photo"`
}

type UpdateStaffRequest struct {
	FullName  *string          `json:"full_name"  validate:"omitempty,max=100"`
	Gender    *string          `json:"gender"     validate:"omitempty,oneof=male female other"`
	BirthDate *string          `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Position  *string          `json:"position"   validate:"omitempty,max=100"`
	Salary    *decimal.Decimal `json:"salary"     validate:"omitempty"`
	Stopped   *bool            `json:"stopped"`
	Photo     *string          `json:"photo"`
	Status    *string          `json:"status"     validate:"omitempty,oneof=active inactive"`
}

type StaffResponse struct {
	ID        string          `json:"id"`
	FullName  string          `json:"full_name"`
	Gender    string          `json:"gender,omitempty"`
	BirthDate *string         `json:"birth_date,omitempty"`
	Position  string          `json:"position"`
	Salary    decimal.Decimal `json:"salary"`
	Stopped   bool            `json:"stopped"`
	Photo     *string         `json:"photo,omitempty"`
	Status    string          `json:"status"`
}
