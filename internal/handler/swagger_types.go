package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// UpdateHeaderRequest represents the update header request body. Omitted
// fields are left unchanged.
type UpdateHeaderRequest struct {
	CustomerName       *string `json:"customerName" example:"Acme Builders"`
	Place              *string `json:"place" example:"Pune"`
	Date               *string `json:"date" example:"202501151030"`
	GSTIN              *string `json:"gstin" example:"27AAACA1234A1Z5"`
	InstallationCharge *string `json:"installationCharge" example:"500"`
	PaymentTerm        *string `json:"paymentTerm" example:"Immediate payment"`
}

// UpdateLineRequest represents the update material line request body.
type UpdateLineRequest struct {
	Field string `json:"field" binding:"required" example:"qty"`
	Value string `json:"value" example:"10"`
}

// SetTermRequest represents the set custom term request body.
type SetTermRequest struct {
	Text string `json:"text" example:"Transport charges extra"`
}

// SetFixedTermRequest represents the fixed term toggle request body.
type SetFixedTermRequest struct {
	Included *bool `json:"included" binding:"required" example:"false"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"reference data not loaded"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"session deleted"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
