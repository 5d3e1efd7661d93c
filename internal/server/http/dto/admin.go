package dto

import "github.com/shopspring/decimal"

// UpdateOrderRequest is the admin edit payload. Absent fields are left untouched.
type UpdateOrderRequest struct {
	Status        *string          `json:"status"`
	Notes         *string          `json:"notes"`
	CustomNotes   *string          `json:"customNotes"`
	PaymentStatus *string          `json:"paymentStatus"`
	DepositAmount *decimal.Decimal `json:"depositAmount"`
}

// ReplyRequest is an operator email to the customer.
type ReplyRequest struct {
	Subject     string              `json:"subject"`
	Message     string              `json:"message"`
	Attachments []AttachmentRequest `json:"attachments"`
}

type AttachmentRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// StatsResponse feeds the admin dashboard.
type StatsResponse struct {
	TotalOrders  int64            `json:"totalOrders"`
	ByStatus     map[string]int64 `json:"byStatus"`
	Revenue      decimal.Decimal  `json:"revenue"`
	RecentOrders []OrderResponse  `json:"recentOrders"`
}

// HealthResponse reports readiness.
type HealthResponse struct {
	Status string `json:"status"`
}
