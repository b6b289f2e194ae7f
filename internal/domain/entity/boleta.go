package entity

import (
	"encoding/json"
	"time"

	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for boleta dates
const DateLayout = "2006-01-02"

// OrderLine is a product snapshot embedded in a boleta.
// Later edits to the catalog product never change it.
type OrderLine struct {
	ProductID string               `json:"id"`
	Name      string               `json:"name"`
	Category  enum.ProductCategory `json:"category"`
	Price     decimal.Decimal      `json:"-"`
	Quantity  int                  `json:"quantity"`
	Unit      enum.Unit            `json:"unit"`
}

// Subtotal returns price * quantity, unrounded
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MarshalJSON renders prices as decimal numbers
func (l OrderLine) MarshalJSON() ([]byte, error) {
	type Alias OrderLine
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Subtotal float64 `json:"subtotal"`
	}{
		Alias:    Alias(l),
		Price:    l.Price.InexactFloat64(),
		Subtotal: l.Subtotal().Round(2).InexactFloat64(),
	})
}

// Boleta represents a delivery/sale receipt
type Boleta struct {
	ID                 string      `json:"id"`
	Client             string      `json:"client"`
	IdentityName       string      `json:"identity_name"`
	TaxID              string      `json:"tax_id"`
	IssueDate          time.Time   `json:"-"`
	TransferDate       time.Time   `json:"-"`
	TransportBrand     string      `json:"transport_brand"`
	TransportPlate     string      `json:"transport_plate"`
	RegistrationNumber string      `json:"registration_number"`
	DriverLicense      string      `json:"driver_license"`
	Lines              []OrderLine `json:"lines"`
	// Total is derived from Lines by the boleta store; it is never set by callers.
	Total decimal.Decimal `json:"-"`
}

// MarshalJSON renders dates as calendar dates and the total as a decimal number
func (b Boleta) MarshalJSON() ([]byte, error) {
	type Alias Boleta
	lines := b.Lines
	if lines == nil {
		lines = []OrderLine{}
	}
	return json.Marshal(&struct {
		Alias
		Lines        []OrderLine `json:"lines"`
		IssueDate    string      `json:"issue_date"`
		TransferDate string      `json:"transfer_date"`
		Total        float64     `json:"total"`
	}{
		Alias:        Alias(b),
		Lines:        lines,
		IssueDate:    b.IssueDate.Format(DateLayout),
		TransferDate: b.TransferDate.Format(DateLayout),
		Total:        b.Total.InexactFloat64(),
	})
}

// Clone returns a copy that shares no slice storage with b
func (b Boleta) Clone() Boleta {
	out := b
	out.Lines = cloneLines(b.Lines)
	return out
}

// Line returns the line for productID, if present
func (b Boleta) Line(productID string) (OrderLine, bool) {
	for _, l := range b.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return OrderLine{}, false
}

// CalculateTotal sums price * quantity over lines, rounded to cents
// (half away from zero).
func CalculateTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

func cloneLines(lines []OrderLine) []OrderLine {
	if lines == nil {
		return nil
	}
	out := make([]OrderLine, len(lines))
	copy(out, lines)
	return out
}
