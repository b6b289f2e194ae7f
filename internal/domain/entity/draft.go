package entity

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity is returned when a line quantity is not positive
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrInvalidUnit is returned for an unknown unit
	ErrInvalidUnit = errors.New("unit must be one of kg, unidad, litro, caja")
)

// BoletaDraft holds the lines of a boleta while it is being assembled.
// It is not visible through the boleta store until committed.
type BoletaDraft struct {
	ID uuid.UUID
	// BoletaID is set when the draft edits an existing boleta
	BoletaID  string
	CreatedAt time.Time
	UpdatedAt time.Time
	lines     []OrderLine
}

// NewBoletaDraft starts an empty draft for a new boleta
func NewBoletaDraft() *BoletaDraft {
	now := time.Now().UTC()
	return &BoletaDraft{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DraftFromBoleta starts a draft pre-filled with the lines of b
func DraftFromBoleta(b Boleta) *BoletaDraft {
	d := NewBoletaDraft()
	d.BoletaID = b.ID
	d.lines = cloneLines(b.Lines)
	return d
}

// AddProduct snapshots p into the draft
func (d *BoletaDraft) AddProduct(p Product, quantity int, unit enum.Unit) error {
	return d.AddLine(p.Snapshot(quantity, unit))
}

// AddLine appends line, or adds its quantity to the existing line for the
// same product. The existing line keeps its snapshot and unit.
func (d *BoletaDraft) AddLine(line OrderLine) error {
	if line.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !line.Unit.IsValid() {
		return ErrInvalidUnit
	}
	d.UpdatedAt = time.Now().UTC()
	for i := range d.lines {
		if d.lines[i].ProductID == line.ProductID {
			d.lines[i].Quantity += line.Quantity
			return nil
		}
	}
	d.lines = append(d.lines, line)
	return nil
}

// RemoveLine drops the line for productID and reports whether one existed
func (d *BoletaDraft) RemoveLine(productID string) bool {
	for i := range d.lines {
		if d.lines[i].ProductID == productID {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			d.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// Lines returns a copy of the draft lines in insertion order
func (d *BoletaDraft) Lines() []OrderLine {
	return cloneLines(d.lines)
}

// IsEmpty reports whether the draft has no lines
func (d *BoletaDraft) IsEmpty() bool {
	return len(d.lines) == 0
}

// Total previews the total the committed boleta will carry
func (d *BoletaDraft) Total() decimal.Decimal {
	return CalculateTotal(d.lines)
}

// Clone returns an independent copy of d
func (d *BoletaDraft) Clone() *BoletaDraft {
	out := *d
	out.lines = cloneLines(d.lines)
	return &out
}

// MarshalJSON exposes the draft lines and preview total
func (d *BoletaDraft) MarshalJSON() ([]byte, error) {
	lines := d.lines
	if lines == nil {
		lines = []OrderLine{}
	}
	return json.Marshal(&struct {
		ID        uuid.UUID   `json:"id"`
		BoletaID  string      `json:"boleta_id,omitempty"`
		Lines     []OrderLine `json:"lines"`
		Total     float64     `json:"total"`
		CreatedAt time.Time   `json:"created_at"`
		UpdatedAt time.Time   `json:"updated_at"`
	}{
		ID:        d.ID,
		BoletaID:  d.BoletaID,
		Lines:     lines,
		Total:     d.Total().InexactFloat64(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}
