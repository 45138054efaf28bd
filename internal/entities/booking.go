package entities

import (
	"strings"
	"time"
)

// Known booking statuses. Status is free text in storage; anything else is
// shown as "unknown".
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking is the read-only projection the orders view works with: one booking
// row joined with its service and vendor names.
type Booking struct {
	ID          string     `db:"id" json:"id"`
	BookingDate *time.Time `db:"booking_date" json:"booking_date"`
	BookingTime *string    `db:"booking_time" json:"booking_time"`
	Status      string     `db:"status" json:"status"`
	Amount      *float64   `db:"amount" json:"amount"`
	CreatedAt   *time.Time `db:"created_at" json:"created_at"`
	ServiceName *string    `db:"service_name" json:"service_name"`
	VendorName  *string    `db:"vendor_name" json:"vendor_name"`

	// StatusDisplay is computed, not stored: "unknown" for statuses outside
	// the recognized set.
	StatusDisplay string `db:"-" json:"status_display"`
}

// DisplayStatus returns the lower-cased status, or "unknown" for values
// outside the recognized set.
func (b Booking) DisplayStatus() string {
	status := strings.ToLower(b.Status)
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return status
	default:
		return "unknown"
	}
}

// OrderQuery carries the view controls: free-text search, status filter,
// sort key/direction and pagination.
type OrderQuery struct {
	Search   string
	Status   string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// OrderPage is one page of the filtered window plus pagination metadata.
type OrderPage struct {
	Items      []Booking `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
	FetchedAt  time.Time `json:"fetched_at"`
}
