package entities

// PaymentOrderRequest is the inbound proxy request. Amount is in the smallest
// currency unit. PaymentCapture defaults to 1 (auto-capture) when nil.
type PaymentOrderRequest struct {
	Amount         int64          `json:"amount"`
	Currency       string         `json:"currency"`
	Receipt        string         `json:"receipt"`
	Notes          map[string]any `json:"notes,omitempty"`
	PaymentCapture *int           `json:"payment_capture,omitempty"`
}

// PaymentOrder mirrors the gateway's order object unchanged.
type PaymentOrder struct {
	ID         string         `json:"id"`
	Entity     string         `json:"entity"`
	Amount     int64          `json:"amount"`
	AmountPaid int64          `json:"amount_paid"`
	AmountDue  int64          `json:"amount_due"`
	Currency   string         `json:"currency"`
	Receipt    string         `json:"receipt"`
	Status     string         `json:"status"`
	Attempts   int            `json:"attempts"`
	Notes      map[string]any `json:"notes"`
	CreatedAt  int64          `json:"created_at"` // epoch seconds
}
