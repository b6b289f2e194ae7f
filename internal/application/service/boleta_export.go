package service

import (
	"context"
	"fmt"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
)

// ExportSheet is the name of the sheet written by ExportBoletas
const ExportSheet = "Boletas"

var exportHeader = []any{
	"Boleta", "Cliente", "Nombre/Razón social", "RUC", "Fecha emisión", "Fecha traslado",
	"Marca transporte", "Placa", "Const. inscripción", "Licencia",
	"Producto ID", "Producto", "Categoría", "Unidad", "Cantidad", "Precio", "Subtotal", "Total boleta",
}

// ExportBoletas writes the boletas matching params to an xlsx workbook,
// one row per order line. Pagination in params is ignored.
func (s *BoletaService) ExportBoletas(ctx context.Context, params *repository.BoletaFilterParams) ([]byte, error) {
	_, span := tracer.Start(ctx, "BoletaService.ExportBoletas")
	defer span.End()

	boletas := s.filter(params)
	span.SetAttributes(attribute.Int("export.boletas", len(boletas)))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, apperror.NewInternalError("Failed to build workbook", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return nil, apperror.NewInternalError("Failed to build workbook", err)
	}

	row := 2
	for _, b := range boletas {
		for _, values := range exportRows(b) {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, apperror.NewInternalError("Failed to build workbook", err)
			}
			if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
				return nil, apperror.NewInternalError("Failed to build workbook", err)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperror.NewInternalError("Failed to write workbook", err)
	}
	return buf.Bytes(), nil
}

// exportRows renders b as one row per line; a boleta without lines still
// gets a single row
func exportRows(b entity.Boleta) [][]any {
	head := []any{
		b.ID, b.Client, b.IdentityName, b.TaxID,
		b.IssueDate.Format(entity.DateLayout), b.TransferDate.Format(entity.DateLayout),
		b.TransportBrand, b.TransportPlate, b.RegistrationNumber, b.DriverLicense,
	}
	total := b.Total.InexactFloat64()

	if len(b.Lines) == 0 {
		row := append(append([]any{}, head...), "", "", "", "", "", "", "", total)
		return [][]any{row}
	}

	rows := make([][]any, 0, len(b.Lines))
	for _, l := range b.Lines {
		row := append([]any{}, head...)
		row = append(row,
			l.ProductID, l.Name, l.Category.String(), l.Unit.String(), l.Quantity,
			l.Price.InexactFloat64(), l.Subtotal().Round(2).InexactFloat64(), total,
		)
		rows = append(rows, row)
	}
	return rows
}

// ExportFilename names the download for the current date
func ExportFilename(date string) string {
	return fmt.Sprintf("boletas-%s.xlsx", date)
}
