package service

import (
	"context"
	"sort"

	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const topProductsLimit = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	productRepo repository.ProductRepository
	boletaRepo  repository.BoletaRepository
	draftRepo   repository.DraftRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	productRepo repository.ProductRepository,
	boletaRepo repository.BoletaRepository,
	draftRepo repository.DraftRepository,
) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		boletaRepo:  boletaRepo,
		draftRepo:   draftRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalProducts      int                  `json:"total_products"`
	ProductsByCategory map[string]int       `json:"products_by_category"`
	TotalBoletas       int                  `json:"total_boletas"`
	TotalRevenue       float64              `json:"total_revenue"`
	OpenDrafts         int                  `json:"open_drafts"`
	TopProducts        []ProductSalesPoint  `json:"top_products"`
	CategorySalesData  []CategorySalesPoint `json:"category_sales_data"`
}

// ProductSalesPoint is the quantity of a product across all boletas.
// Quantities of different units are added as they are.
type ProductSalesPoint struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
}

// CategorySalesPoint represents sales by category
type CategorySalesPoint struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	_, span := tracer.Start(ctx, "DashboardService.GetDashboardStats")
	defer span.End()

	stats := &DashboardStats{
		ProductsByCategory: make(map[string]int),
		OpenDrafts:         s.draftRepo.Count(),
	}
	for _, c := range enum.ProductCategories() {
		stats.ProductsByCategory[c.String()] = 0
	}

	products := s.productRepo.List()
	stats.TotalProducts = len(products)
	for _, p := range products {
		stats.ProductsByCategory[p.Category.String()]++
	}

	boletas := s.boletaRepo.List()
	stats.TotalBoletas = len(boletas)

	revenue := decimal.Zero
	byCategory := make(map[enum.ProductCategory]decimal.Decimal)
	type sold struct {
		point  ProductSalesPoint
		amount decimal.Decimal
		order  int
	}
	byProduct := make(map[string]*sold)

	for _, b := range boletas {
		revenue = revenue.Add(b.Total)
		for _, l := range b.Lines {
			sub := l.Subtotal()
			byCategory[l.Category] = byCategory[l.Category].Add(sub)

			p, ok := byProduct[l.ProductID]
			if !ok {
				p = &sold{point: ProductSalesPoint{ProductID: l.ProductID, Name: l.Name}, order: len(byProduct)}
				byProduct[l.ProductID] = p
			}
			p.point.Quantity += l.Quantity
			p.amount = p.amount.Add(sub)
		}
	}
	stats.TotalRevenue = revenue.Round(2).InexactFloat64()

	for _, c := range enum.ProductCategories() {
		stats.CategorySalesData = append(stats.CategorySalesData, CategorySalesPoint{
			Category: c.String(),
			Amount:   byCategory[c].Round(2).InexactFloat64(),
		})
	}

	ranked := make([]*sold, 0, len(byProduct))
	for _, p := range byProduct {
		ranked = append(ranked, p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].point.Quantity != ranked[j].point.Quantity {
			return ranked[i].point.Quantity > ranked[j].point.Quantity
		}
		return ranked[i].order < ranked[j].order
	})
	stats.TopProducts = make([]ProductSalesPoint, 0, topProductsLimit)
	for i, p := range ranked {
		if i == topProductsLimit {
			break
		}
		p.point.Amount = p.amount.Round(2).InexactFloat64()
		stats.TopProducts = append(stats.TopProducts, p.point)
	}

	return stats, nil
}
