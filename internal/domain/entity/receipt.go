package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// ReceiptTransport carries the transfer details of a boleta.
type ReceiptTransport struct {
	Brand              string `json:"brand"`
	Plate              string `json:"plate"`
	RegistrationNumber string `json:"registration_number"`
	DriverLicense      string `json:"driver_license"`
}

// Receipt is a value object representing a printable boleta.
// It is composed from a stored boleta at print time and never stored itself.
type Receipt struct {
	Header       ReceiptHeader    `json:"header"`
	BoletaID     string           `json:"boleta_id"`
	IssueDate    string           `json:"issue_date"`
	TransferDate string           `json:"transfer_date"`
	Client       string           `json:"client"`
	IdentityName string           `json:"identity_name"`
	ClientTaxID  string           `json:"client_tax_id"`
	Transport    ReceiptTransport `json:"transport"`
	Items        []ReceiptItem    `json:"items"`
	Total        float64          `json:"total"`
}

// NewReceipt builds the printable view of b under header h
func NewReceipt(h ReceiptHeader, b Boleta) *Receipt {
	r := &Receipt{
		Header:       h,
		BoletaID:     b.ID,
		IssueDate:    b.IssueDate.Format(DateLayout),
		TransferDate: b.TransferDate.Format(DateLayout),
		Client:       b.Client,
		IdentityName: b.IdentityName,
		ClientTaxID:  b.TaxID,
		Transport: ReceiptTransport{
			Brand:              b.TransportBrand,
			Plate:              b.TransportPlate,
			RegistrationNumber: b.RegistrationNumber,
			DriverLicense:      b.DriverLicense,
		},
		Items: make([]ReceiptItem, 0, len(b.Lines)),
		Total: b.Total.InexactFloat64(),
	}
	for _, l := range b.Lines {
		r.Items = append(r.Items, ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			Unit:      l.Unit.String(),
			UnitPrice: l.Price.InexactFloat64(),
			Total:     l.Subtotal().Round(2).InexactFloat64(),
		})
	}
	return r
}
