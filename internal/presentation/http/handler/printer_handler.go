package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/produce-store-api/internal/application/service"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/request"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	useJSONFieldNames()
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// PrintBoleta prints the receipt of a stored boleta.
func (h *PrinterHandler) PrintBoleta(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.printerService.PrintBoletaReceipt(c.Request.Context(), c.Param("id"), req.Copies)
	if err != nil {
		// The receipt was built but the printer failed
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
