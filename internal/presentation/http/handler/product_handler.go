package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/produce-store-api/internal/application/service"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/request"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/response"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"github.com/sangkips/produce-store-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	maxImportSize  int64
}

// NewProductHandler creates a new product handler. Uploads larger than
// maxImportSize bytes are rejected by Import; zero disables the check.
func NewProductHandler(productService *service.ProductService, maxImportSize int64) *ProductHandler {
	useJSONFieldNames()
	return &ProductHandler{productService: productService, maxImportSize: maxImportSize}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := productFilterParams(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

func productFilterParams(filter *request.ProductFilterRequest) (*repository.ProductFilterParams, error) {
	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	var errs []apperror.FieldError
	if filter.Category != "" {
		category, ok := enum.ParseProductCategory(filter.Category)
		if !ok {
			errs = append(errs, apperror.FieldError{Field: "category", Message: "category must be one of fruta, verdura, otros"})
		} else {
			params.Category = &category
		}
	}
	if filter.MinPrice != "" {
		p, err := decimal.NewFromString(filter.MinPrice)
		if err != nil {
			errs = append(errs, apperror.FieldError{Field: "min_price", Message: "min_price must be a number"})
		} else {
			params.MinPrice = &p
		}
	}
	if filter.MaxPrice != "" {
		p, err := decimal.NewFromString(filter.MaxPrice)
		if err != nil {
			errs = append(errs, apperror.FieldError{Field: "max_price", Message: "max_price must be a number"})
		} else {
			params.MaxPrice = &p
		}
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	return params, nil
}

func productInput(req *request.ProductRequest) *service.ProductInput {
	category, _ := enum.ParseProductCategory(req.Category)
	return &service.ProductInput{
		Name:     req.Name,
		Category: category,
		Price:    *req.Price,
	}
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Import handles a multipart xlsx upload in the "file" field
func (h *ProductHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.NewFieldError("file", "file is required"))
		return
	}
	if h.maxImportSize > 0 && fh.Size > h.maxImportSize {
		response.Error(c, apperror.NewFieldError("file", "file is too large"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, apperror.NewBadRequestError("Could not read uploaded file"))
		return
	}
	defer f.Close()

	result, err := h.productService.ImportProducts(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles replacing a product
func (h *ProductHandler) Update(c *gin.Context) {
	var req request.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product. Unknown ids also answer 204.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
