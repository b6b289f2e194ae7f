package request

// PrintReceiptRequest is the optional body of a receipt print.
type PrintReceiptRequest struct {
	Copies int `json:"copies" binding:"omitempty,min=1,max=5"`
}
