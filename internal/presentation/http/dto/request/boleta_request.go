package request

// BoletaHeaderRequest carries the client, date and transport fields of a boleta
type BoletaHeaderRequest struct {
	Client             string `json:"client" binding:"required,max=255"`
	IdentityName       string `json:"identity_name" binding:"required,max=255"`
	TaxID              string `json:"tax_id" binding:"required,max=20"`
	IssueDate          string `json:"issue_date" binding:"required,datetime=2006-01-02"`
	TransferDate       string `json:"transfer_date" binding:"required,datetime=2006-01-02"`
	TransportBrand     string `json:"transport_brand" binding:"required,max=100"`
	TransportPlate     string `json:"transport_plate" binding:"required,max=20"`
	RegistrationNumber string `json:"registration_number" binding:"required,max=50"`
	DriverLicense      string `json:"driver_license" binding:"required,max=50"`
}

// BoletaLineRequest references a catalog product. Unit defaults to unidad.
type BoletaLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Unit      string `json:"unit" binding:"omitempty,oneof=kg unidad litro caja"`
}

// BoletaRequest is the body of a boleta create or whole-record replace
type BoletaRequest struct {
	BoletaHeaderRequest
	Lines []BoletaLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// BoletaFilterRequest represents boleta filter parameters
type BoletaFilterRequest struct {
	Client  string `form:"client"`
	TaxID   string `form:"tax_id"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// StartDraftRequest optionally names the boleta a draft edits
type StartDraftRequest struct {
	BoletaID string `json:"boleta_id"`
}
