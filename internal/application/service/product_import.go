package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// importColumns maps accepted header names to a canonical column
var importColumns = map[string]string{
	"name":      "name",
	"nombre":    "name",
	"category":  "category",
	"categoria": "category",
	"categoría": "category",
	"price":     "price",
	"precio":    "price",
}

// ImportRowError reports why a spreadsheet row was skipped.
// Row is the 1-based sheet row number.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult lists the products created from a spreadsheet
type ImportResult struct {
	Imported []entity.Product `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

// ImportProducts reads the first sheet of an xlsx workbook whose header row
// names the name, category and price columns. Valid rows are added in sheet
// order; invalid rows are reported and skipped.
func (s *ProductService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	_, span := tracer.Start(ctx, "ProductService.ImportProducts")
	defer span.End()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("File is not a valid xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewInternalError("Failed to read workbook", err)
	}
	if len(rows) == 0 {
		return nil, apperror.NewBadRequestError("Workbook is empty")
	}

	cols, err := headerColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Imported: []entity.Product{},
		Errors:   []ImportRowError{},
	}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}
		input, msg := parseImportRow(row, cols)
		if msg == "" {
			if err := input.validate(); err != nil {
				msg = describeValidation(err)
			}
		}
		if msg != "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: msg})
			continue
		}
		result.Imported = append(result.Imported, s.productRepo.Add(input.toEntity()))
	}

	span.SetAttributes(
		attribute.Int("import.imported", len(result.Imported)),
		attribute.Int("import.errors", len(result.Errors)),
	)
	s.log.Info("products imported",
		zap.Int("imported", len(result.Imported)),
		zap.Int("rejected", len(result.Errors)),
	)
	return result, nil
}

func headerColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, 3)
	for i, h := range header {
		if c, ok := importColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := cols[c]; !dup {
				cols[c] = i
			}
		}
	}
	var missing []string
	for _, c := range []string{"name", "category", "price"} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.NewBadRequestError("Missing columns: " + strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseImportRow(row []string, cols map[string]int) (*ProductInput, string) {
	cell := func(name string) string {
		if i := cols[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	category, ok := enum.ParseProductCategory(cell("category"))
	if !ok {
		return nil, fmt.Sprintf("unknown category %q", cell("category"))
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(cell("price"), ",", "."))
	if err != nil {
		return nil, fmt.Sprintf("invalid price %q", cell("price"))
	}
	return &ProductInput{Name: cell("name"), Category: category, Price: price}, ""
}

func describeValidation(err error) string {
	appErr := apperror.GetAppError(err)
	msgs := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		msgs = append(msgs, fe.Message)
	}
	if len(msgs) == 0 {
		return appErr.Message
	}
	return strings.Join(msgs, "; ")
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
