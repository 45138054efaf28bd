package handlers

import (
	"context"
	"io"

	"github.com/bookeasy/admin-backend/internal/entities"
)

type OrderService interface {
	Refresh(ctx context.Context) error
	Query(q entities.OrderQuery) entities.OrderPage
	ExportCSV(w io.Writer, q entities.OrderQuery) error
}

type CatalogService interface {
	ListServices(ctx context.Context, search, sortBy, sortDir string) ([]entities.Service, error)
	SetServiceFeatured(ctx context.Context, serviceID string, featured bool) error
	ListVendors(ctx context.Context) ([]entities.Vendor, error)
	ListUsers(ctx context.Context) ([]entities.UserProfile, error)
}

type PaymentService interface {
	CreateOrder(ctx context.Context, req entities.PaymentOrderRequest) (*entities.PaymentOrder, error)
}

type AssetService interface {
	ListBanners(ctx context.Context) ([]entities.Asset, error)
	CreateBanner(ctx context.Context, asset entities.Asset) (*entities.Asset, error)
	DeleteBanner(ctx context.Context, assetID string) error
}
