package dtos

// SendInvoiceRequest is the body for the send-invoice endpoint. The
// PDF is base64-encoded; amount and docType only affect labelling.
type SendInvoiceRequest struct {
	PDF      string `json:"pdf" validate:"required"`
	Filename string `json:"filename" validate:"required"`
	Amount   string `json:"amount"`
	DocType  string `json:"docType"`
}

type SendInvoiceResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}
