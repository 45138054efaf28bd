package entities

import "time"

type Service struct {
	ID         string    `db:"id" json:"id"`
	VendorID   *string   `db:"vendor_id" json:"vendor_id"`
	Name       string    `db:"name" json:"name"`
	Price      *float64  `db:"price" json:"price"`
	Category   *string   `db:"category" json:"category"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	IsVisible  *bool     `db:"is_visible_to_users" json:"is_visible_to_users"`
	IsFeatured *bool     `db:"is_featured" json:"is_featured"`
	VendorName *string   `db:"vendor_name" json:"vendor_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Vendor struct {
	ID           string  `db:"id" json:"id"`
	BusinessName string  `db:"business_name" json:"business_name"`
	Address      *string `db:"address" json:"address"`
	Category     *string `db:"category" json:"category"`
	PhoneNumber  *string `db:"phone_number" json:"phone_number"`
}

type UserProfile struct {
	ID        string    `db:"id" json:"id"`
	FirstName *string   `db:"first_name" json:"first_name"`
	LastName  *string   `db:"last_name" json:"last_name"`
	Phone     *string   `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
