package entity

import (
	"encoding/json"

	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Product represents a sellable catalog item
type Product struct {
	ID       string               `json:"id"`
	Category enum.ProductCategory `json:"category"`
	Name     string               `json:"name"`
	Price    decimal.Decimal      `json:"-"`
}

// MarshalJSON renders the price as a decimal number
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: p.Price.InexactFloat64(),
	})
}

// Snapshot copies the product fields into a new order line
func (p Product) Snapshot(quantity int, unit enum.Unit) OrderLine {
	return OrderLine{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Quantity:  quantity,
		Unit:      unit,
	}
}
