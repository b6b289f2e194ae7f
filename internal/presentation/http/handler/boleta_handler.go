package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/produce-store-api/internal/application/service"
	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/request"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/response"
	"github.com/sangkips/produce-store-api/pkg/pagination"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BoletaHandler handles boleta-related HTTP requests
type BoletaHandler struct {
	boletaService *service.BoletaService
}

// NewBoletaHandler creates a new boleta handler
func NewBoletaHandler(boletaService *service.BoletaService) *BoletaHandler {
	useJSONFieldNames()
	return &BoletaHandler{boletaService: boletaService}
}

func boletaFilterParams(filter *request.BoletaFilterRequest) *repository.BoletaFilterParams {
	return &repository.BoletaFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Client: filter.Client,
		TaxID:  filter.TaxID,
	}
}

func boletaInput(req *request.BoletaRequest) *service.BoletaInput {
	input := &service.BoletaInput{
		Header: *headerInput(&req.BoletaHeaderRequest),
		Lines:  make([]service.LineInput, 0, len(req.Lines)),
	}
	for i := range req.Lines {
		input.Lines = append(input.Lines, *lineInput(&req.Lines[i]))
	}
	return input
}

// List handles listing boletas
func (h *BoletaHandler) List(c *gin.Context) {
	var filter request.BoletaFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.boletaService.ListBoletas(c.Request.Context(), boletaFilterParams(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Boletas retrieved successfully", result)
}

// Create handles creating a boleta
func (h *BoletaHandler) Create(c *gin.Context) {
	var req request.BoletaRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	boleta, err := h.boletaService.CreateBoleta(c.Request.Context(), boletaInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Boleta created successfully", boleta)
}

// Export streams the filtered boletas as an xlsx attachment
func (h *BoletaHandler) Export(c *gin.Context) {
	var filter request.BoletaFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	data, err := h.boletaService.ExportBoletas(c.Request.Context(), boletaFilterParams(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := service.ExportFilename(time.Now().Format(entity.DateLayout))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Get handles getting a single boleta
func (h *BoletaHandler) Get(c *gin.Context) {
	boleta, err := h.boletaService.GetBoleta(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Boleta retrieved successfully", boleta)
}

// Update handles replacing a boleta
func (h *BoletaHandler) Update(c *gin.Context) {
	var req request.BoletaRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	boleta, err := h.boletaService.UpdateBoleta(c.Request.Context(), c.Param("id"), boletaInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Boleta updated successfully", boleta)
}

// Delete handles deleting a boleta. Unknown ids also answer 204.
func (h *BoletaHandler) Delete(c *gin.Context) {
	if err := h.boletaService.DeleteBoleta(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
