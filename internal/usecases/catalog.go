package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/bookeasy/admin-backend/internal/entities"
)

const catalogFetchLimit = 500

type CatalogRepository interface {
	FindServices(ctx context.Context, limit int) ([]entities.Service, error)
	UpdateServiceFeatured(ctx context.Context, serviceID string, featured bool) error
	FindVendors(ctx context.Context, limit int) ([]entities.Vendor, error)
	FindUsers(ctx context.Context, limit int) ([]entities.UserProfile, error)
}

// CatalogService serves the thinner listing screens: services, vendors,
// users. Like the orders view, services are filtered and sorted in memory
// after one bounded fetch.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (cs *CatalogService) ListServices(ctx context.Context, search, sortBy, sortDir string) ([]entities.Service, error) {
	services, err := cs.repo.FindServices(ctx, catalogFetchLimit)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(search))
	if q != "" {
		filtered := make([]entities.Service, 0, len(services))
		for _, s := range services {
			name := strings.ToLower(s.Name)
			vendor := ""
			if s.VendorName != nil {
				vendor = strings.ToLower(*s.VendorName)
			}
			if strings.Contains(name, q) || strings.Contains(vendor, q) {
				filtered = append(filtered, s)
			}
		}
		services = filtered
	}

	desc := sortDir == "desc"
	sort.SliceStable(services, func(i, j int) bool {
		var cmp int
		switch sortBy {
		case "service":
			cmp = strings.Compare(strings.ToLower(services[i].Name), strings.ToLower(services[j].Name))
		case "price":
			pi, pj := amountOrZero(services[i].Price), amountOrZero(services[j].Price)
			switch {
			case pi < pj:
				cmp = -1
			case pi > pj:
				cmp = 1
			}
		default: // vendor
			vi, vj := strFromPtr(services[i].VendorName), strFromPtr(services[j].VendorName)
			cmp = strings.Compare(strings.ToLower(vi), strings.ToLower(vj))
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return services, nil
}

func (cs *CatalogService) SetServiceFeatured(ctx context.Context, serviceID string, featured bool) error {
	return cs.repo.UpdateServiceFeatured(ctx, serviceID, featured)
}

func (cs *CatalogService) ListVendors(ctx context.Context) ([]entities.Vendor, error) {
	return cs.repo.FindVendors(ctx, catalogFetchLimit)
}

func (cs *CatalogService) ListUsers(ctx context.Context) ([]entities.UserProfile, error) {
	return cs.repo.FindUsers(ctx, catalogFetchLimit)
}
