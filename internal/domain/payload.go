package domain

// InvoicePayload is the document posted to the generation service.
type InvoicePayload struct {
	Date               string        `json:"date"`
	QuotationNo        string        `json:"quotationNo"`
	RecipientName      string        `json:"recipientName"`
	RecipientAddress   string        `json:"recipientAddress"`
	RecipientGSTIN     string        `json:"recipientGSTIN,omitempty"`
	Items              []PayloadItem `json:"items"`
	UntaxedAmount      Money         `json:"untaxedAmount"`
	SGST               Money         `json:"sgst"`
	CGST               Money         `json:"cgst"`
	Total              Money         `json:"total"`
	TotalInWords       string        `json:"totalInWords"`
	Terms              []string      `json:"terms"`
	InstallationCharge *Money        `json:"installationCharge,omitempty"`
	PaymentTerm        string        `json:"paymentTerm,omitempty"`
}

// PayloadItem is one priced row of the payload.
type PayloadItem struct {
	Name      string  `json:"name"`
	HSN       string  `json:"hsn"`
	Qty       Number  `json:"qty"`
	UnitPrice Number  `json:"unitPrice"`
	Discount  *Number `json:"discount,omitempty"`
	Tax       *Number `json:"tax,omitempty"`
	Amount    Money   `json:"amount"`
}
