package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tx "github.com/Thiht/transactor/pgx"
	"github.com/jackc/pgx/v5"

	"github.com/bookeasy/admin-backend/internal/entities"
	"github.com/bookeasy/admin-backend/pkg/database"
)

type AssetsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewAssetsRepository(logger *slog.Logger, pg *database.Postgres) *AssetsRepository {
	return &AssetsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

func (r *AssetsRepository) FindAssets(ctx context.Context, appType, assetType string) ([]entities.Asset, error) {
	query := `SELECT id, app_type, asset_type, asset_name, asset_path, bucket_name, description, is_active, file_size, mime_type, created_at
                FROM app_assets
               WHERE app_type = $1 AND asset_type = $2
               ORDER BY created_at DESC`

	rows, err := r.db(ctx).Query(ctx, query, appType, assetType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	assets, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Asset])
	if err != nil {
		r.logger.Error("failed to collect asset rows", "error", err)
		return nil, err
	}

	return assets, nil
}

func (r *AssetsRepository) InsertAsset(ctx context.Context, asset entities.Asset) (string, error) {
	var id string

	err := r.db(ctx).QueryRow(ctx,
		`INSERT INTO app_assets (app_type, asset_type, asset_name, asset_path, bucket_name, description, is_active, file_size, mime_type)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id`,
		asset.AppType, asset.AssetType, asset.AssetName, asset.AssetPath, asset.BucketName,
		asset.Description, asset.IsActive, asset.FileSize, asset.MimeType).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert asset: %w", err)
	}

	return id, nil
}

func (r *AssetsRepository) DeleteAsset(ctx context.Context, assetID string) error {
	ct, err := r.db(ctx).Exec(ctx, "DELETE FROM app_assets WHERE id = $1", assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("asset %s not found", assetID)
	}
	return nil
}
