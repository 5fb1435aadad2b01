package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Search     string `form:"search"`      // matches name or code
	Status     string `form:"status"`      // active | inactive | all (default active)
	CategoryID string `form:"category_id"` // exact match
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateProductRequest struct {
	Code        string          `json:"code"         validate:"required,max=50"`
	Name        string          `json:"name"         validate:"required,max=100"`
	CategoryID  string          `json:"category_id"  validate:"required,uuid"`
	BrandID     *string         `json:"brand_id"     validate:"omitempty,uuid"`
	ImportPrice decimal.Decimal `json:"import_price" validate:"min=0"`
	SalePrice   decimal.Decimal `json:"sale_price"   validate:"min=0"`
	MinQty      *int            `json:"min_qty"      validate:"omitempty,min=0"`
	Image       *string         `json:"image"`
	Status      string          `json:"status"       validate:"required,oneof=active inactive"`
}

type UpdateProductRequest struct {
	Code        *string          `json:"code"         validate:"omitempty,max=50"`
	Name        *string          `json:"name"         validate:"omitempty,max=100"`
	CategoryID  *string          `json:"category_id"  validate:"omitempty,uuid"`
	BrandID     *string          `json:"brand_id"     validate:"omitempty,uuid"`
	ImportPrice *decimal.Decimal `json:"import_price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	MinQty      *int             `json:"min_qty"      validate:"omitempty,min=0"`
	Image       *string          `json:"image"`
	Status      *string          `json:"status"       validate:"omitempty,oneof=active inactive"`
}

type ProductResponse struct {
	ID          string            `json:"id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Qty         int               `json:"qty"`
	ImportPrice decimal.Decimal   `json:"import_price"`
	SalePrice   decimal.Decimal   `json:"sale_price"`
	MinQty      int               `json:"min_qty"`
	Image       *string           `json:"image,omitempty"`
	Status      string            `json:"status"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Brand       *BrandResponse    `json:"brand,omitempty"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceCheckResponse serves the public, redis-cached price lookup by code.
type PriceCheckResponse struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Qty       int             `json:"qty"`
	Category  string          `json:"category,omitempty"`
}
