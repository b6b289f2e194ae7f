package repository

import (
	"strings"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// BoletaRepository is the authoritative receipt store and the authority
// for boleta totals. Update and Delete are silent no-ops when the id is unknown.
type BoletaRepository interface {
	List() []entity.Boleta
	// Add assigns a new id and computes the total of candidate before storing it
	Add(candidate entity.Boleta) entity.Boleta
	// Update replaces the boleta with the same id and recomputes its total
	Update(boleta entity.Boleta)
	Delete(id string)
	GetByID(id string) (entity.Boleta, bool)
	CalculateTotal(lines []entity.OrderLine) decimal.Decimal
}

// BoletaFilterParams contains filtering parameters for boleta queries
type BoletaFilterParams struct {
	Pagination *pagination.PaginationParams
	Client     string
	TaxID      string
}

// Match reports whether b passes every filter that is set.
// Both filters are case-insensitive substring matches.
func (f *BoletaFilterParams) Match(b entity.Boleta) bool {
	if f == nil {
		return true
	}
	if f.Client != "" && !strings.Contains(strings.ToLower(b.Client), strings.ToLower(f.Client)) {
		return false
	}
	if f.TaxID != "" && !strings.Contains(strings.ToLower(b.TaxID), strings.ToLower(f.TaxID)) {
		return false
	}
	return true
}
