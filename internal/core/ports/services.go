package ports

import (
	"context"
	"io"

	"github.com/bookeasy/admin-backend/internal/entities"
)

// OrderService defines the interface for the orders window.
type OrderService interface {
	Refresh(ctx context.Context) error
	Query(q entities.OrderQuery) entities.OrderPage
	ExportCSV(w io.Writer, q entities.OrderQuery) error
}

// CatalogService defines the interface for services/vendors/users listings.
type CatalogService interface {
	ListServices(ctx context.Context, search, sortBy, sortDir string) ([]entities.Service, error)
	SetServiceFeatured(ctx context.Context, serviceID string, featured bool) error
	ListVendors(ctx context.Context) ([]entities.Vendor, error)
	ListUsers(ctx context.Context) ([]entities.UserProfile, error)
}

// PaymentService defines the interface for the payment-order proxy.
type PaymentService interface {
	CreateOrder(ctx context.Context, req entities.PaymentOrderRequest) (*entities.PaymentOrder, error)
}

// AssetService defines the interface for banner asset bookkeeping.
type AssetService interface {
	ListBanners(ctx context.Context) ([]entities.Asset, error)
	CreateBanner(ctx context.Context, asset entities.Asset) (*entities.Asset, error)
	DeleteBanner(ctx context.Context, assetID string) error
}
