// Package seed holds the catalog and boletas a fresh store starts with.
package seed

import (
	"time"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DefaultProducts returns the starter catalog
func DefaultProducts() []entity.Product {
	return []entity.Product{
		{ID: "1", Category: enum.CategoryFruta, Name: "Manzana", Price: decimal.RequireFromString("1.50")},
		{ID: "2", Category: enum.CategoryVerdura, Name: "Lechuga", Price: decimal.RequireFromString("0.99")},
		{ID: "3", Category: enum.CategoryFruta, Name: "Plátano", Price: decimal.RequireFromString("0.75")},
		{ID: "4", Category: enum.CategoryVerdura, Name: "Tomate", Price: decimal.RequireFromString("2.20")},
		{ID: "5", Category: enum.CategoryFruta, Name: "Naranja", Price: decimal.RequireFromString("1.20")},
	}
}

// DefaultBoletas returns the starter boletas, built from DefaultProducts
func DefaultBoletas() []entity.Boleta {
	products := DefaultProducts()
	lines := []entity.OrderLine{
		products[0].Snapshot(2, enum.UnitKg),
		products[1].Snapshot(3, enum.UnitUnidad),
	}
	return []entity.Boleta{
		{
			ID:                 "B001",
			Client:             "Cliente A",
			IdentityName:       "Juan Perez",
			TaxID:              "12345678901",
			IssueDate:          date(2025, time.August, 1),
			TransferDate:       date(2025, time.August, 2),
			TransportBrand:     "Toyota",
			TransportPlate:     "ABC-123",
			RegistrationNumber: "CI-001",
			DriverLicense:      "L-001",
			Lines:              lines,
			Total:              entity.CalculateTotal(lines),
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
