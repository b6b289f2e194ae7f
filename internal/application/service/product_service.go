package service

import (
	"context"
	"strings"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"github.com/sangkips/produce-store-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		log:         log.Named("products"),
	}
}

// ProductInput is the validated body of a product create or replace
type ProductInput struct {
	Name     string
	Category enum.ProductCategory
	Price    decimal.Decimal
}

func (in *ProductInput) validate() error {
	var errs fieldErrors
	errs.required("name", in.Name)
	if !in.Category.IsValid() {
		errs.add("category", "category must be one of fruta, verdura, otros")
	}
	if in.Price.IsNegative() {
		errs.add("price", "price must be zero or greater")
	}
	return errs.err()
}

func (in *ProductInput) toEntity() entity.Product {
	return entity.Product{
		Name:     strings.TrimSpace(in.Name),
		Category: in.Category,
		Price:    in.Price,
	}
}

// CreateProduct validates input and adds it to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	_, span := tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	if err := input.validate(); err != nil {
		return nil, err
	}

	product := s.productRepo.Add(input.toEntity())
	span.SetAttributes(attribute.String("product.id", product.ID))
	s.log.Info("product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return &product, nil
}

// GetProduct retrieves a product by id
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	_, span := tracer.Start(ctx, "ProductService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, ok := s.productRepo.GetByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	return &product, nil
}

// ListProducts lists products in insertion order with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	_, span := tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	if params == nil {
		params = &repository.ProductFilterParams{}
	}

	matched := make([]entity.Product, 0)
	for _, p := range s.productRepo.List() {
		if params.Match(p) {
			matched = append(matched, p)
		}
	}

	items, pag := pagination.Paginate(matched, params.Pagination)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateProduct replaces the product with the given id.
// Existing boletas keep their snapshot of the old values.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*entity.Product, error) {
	_, span := tracer.Start(ctx, "ProductService.UpdateProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if err := input.validate(); err != nil {
		return nil, err
	}

	product := input.toEntity()
	product.ID = id
	s.productRepo.Update(product)

	// the store ignores unknown ids, so absence only shows up on read-back
	stored, ok := s.productRepo.GetByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	s.log.Info("product updated", zap.String("product_id", id))
	return &stored, nil
}

// DeleteProduct removes the product. Unknown ids are not an error.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "ProductService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	s.productRepo.Delete(id)
	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}
