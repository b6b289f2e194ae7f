package repository

import (
	"strings"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/sangkips/produce-store-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductRepository is the authoritative product catalog.
// Update and Delete are silent no-ops when the id is unknown.
type ProductRepository interface {
	// List returns the products in insertion order
	List() []entity.Product
	// Add assigns a new id to candidate, stores it and returns the stored record
	Add(candidate entity.Product) entity.Product
	Update(product entity.Product)
	Delete(id string)
	GetByID(id string) (entity.Product, bool)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   *enum.ProductCategory
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// Match reports whether p passes every filter that is set
func (f *ProductFilterParams) Match(p entity.Product) bool {
	if f == nil {
		return true
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
