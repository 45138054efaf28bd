package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	tx "github.com/Thiht/transactor/pgx"
	"github.com/jackc/pgx/v5"

	"github.com/bookeasy/admin-backend/internal/entities"
	"github.com/bookeasy/admin-backend/pkg/database"
)

// CatalogRepository reads the services, vendor and user listing tables.
type CatalogRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewCatalogRepository(logger *slog.Logger, pg *database.Postgres) *CatalogRepository {
	return &CatalogRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

func (r *CatalogRepository) FindServices(ctx context.Context, limit int) ([]entities.Service, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"s.id",
			"s.vendor_id",
			"s.name",
			"s.price",
			"s.category",
			"s.is_active",
			"s.is_visible_to_users",
			"s.is_featured",
			"v.business_name AS vendor_name",
			"s.created_at",
		).
		From("services s").
		LeftJoin("vendor_profiles v ON v.id = s.vendor_id").
		OrderBy("s.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	services, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Service])
	if err != nil {
		r.logger.Error("failed to collect service rows", "error", err)
		return nil, err
	}

	return services, nil
}

func (r *CatalogRepository) UpdateServiceFeatured(ctx context.Context, serviceID string, featured bool) error {
	ct, err := r.db(ctx).Exec(ctx, "UPDATE services SET is_featured = $1 WHERE id = $2", featured, serviceID)
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", serviceID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", serviceID)
	}
	return nil
}

func (r *CatalogRepository) FindVendors(ctx context.Context, limit int) ([]entities.Vendor, error) {
	rows, err := r.db(ctx).Query(ctx,
		"SELECT id, business_name, address, category, phone_number FROM vendor_profiles ORDER BY business_name LIMIT $1", limit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	vendors, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Vendor])
	if err != nil {
		r.logger.Error("failed to collect vendor rows", "error", err)
		return nil, err
	}

	return vendors, nil
}

func (r *CatalogRepository) FindUsers(ctx context.Context, limit int) ([]entities.UserProfile, error) {
	rows, err := r.db(ctx).Query(ctx,
		"SELECT id, first_name, last_name, phone, created_at FROM user_profiles ORDER BY created_at DESC LIMIT $1", limit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.UserProfile])
	if err != nil {
		r.logger.Error("failed to collect user rows", "error", err)
		return nil, err
	}

	return users, nil
}
