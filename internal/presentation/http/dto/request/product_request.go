package request

import "github.com/shopspring/decimal"

// ProductRequest is the body of a product create or whole-record replace
type ProductRequest struct {
	Name     string           `json:"name" binding:"required,max=255"`
	Category string           `json:"category" binding:"required,oneof=fruta verdura otros"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
