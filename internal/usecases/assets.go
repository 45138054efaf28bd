package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bookeasy/admin-backend/internal/entities"
)

const (
	bannerAppType   = "user"
	bannerAssetType = "banner"
	bannerBucket    = "user-app-assets"
)

type AssetsRepository interface {
	FindAssets(ctx context.Context, appType, assetType string) ([]entities.Asset, error)
	InsertAsset(ctx context.Context, asset entities.Asset) (string, error)
	DeleteAsset(ctx context.Context, assetID string) error
}

// AssetService handles banner metadata rows. Binaries live in object
// storage; this service only does bucket/path bookkeeping and public URL
// composition.
type AssetService struct {
	repo          AssetsRepository
	publicBaseURL string
}

func NewAssetService(repo AssetsRepository, publicBaseURL string) *AssetService {
	return &AssetService{repo: repo, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (as *AssetService) ListBanners(ctx context.Context) ([]entities.Asset, error) {
	assets, err := as.repo.FindAssets(ctx, bannerAppType, bannerAssetType)
	if err != nil {
		return nil, err
	}

	for i := range assets {
		assets[i].PublicURL = as.publicURL(assets[i])
	}

	return assets, nil
}

func (as *AssetService) CreateBanner(ctx context.Context, asset entities.Asset) (*entities.Asset, error) {
	asset.AppType = bannerAppType
	asset.AssetType = bannerAssetType
	asset.IsActive = true
	if asset.BucketName == "" {
		asset.BucketName = bannerBucket
	}
	if asset.AssetName == "" {
		asset.AssetName = fmt.Sprintf("banner_%s", uuid.NewString())
	}
	if asset.AssetPath == "" {
		asset.AssetPath = fmt.Sprintf("banners/%s", asset.AssetName)
	}

	id, err := as.repo.InsertAsset(ctx, asset)
	if err != nil {
		return nil, err
	}

	asset.ID = id
	asset.PublicURL = as.publicURL(asset)

	return &asset, nil
}

func (as *AssetService) DeleteBanner(ctx context.Context, assetID string) error {
	return as.repo.DeleteAsset(ctx, assetID)
}

func (as *AssetService) publicURL(asset entities.Asset) string {
	if as.publicBaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", as.publicBaseURL, asset.BucketName, asset.AssetPath)
}
