package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	tx "github.com/Thiht/transactor/pgx"
	"github.com/jackc/pgx/v5"

	"github.com/bookeasy/admin-backend/internal/entities"
	"github.com/bookeasy/admin-backend/pkg/database"
)

type BookingsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewBookingsRepository(logger *slog.Logger, pg *database.Postgres) *BookingsRepository {
	return &BookingsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

// FindRecentBookings returns the most recently created bookings joined with
// service and vendor names, newest first, capped at limit.
func (r *BookingsRepository) FindRecentBookings(ctx context.Context, limit int) ([]entities.Booking, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"b.id",
			"b.booking_date",
			"b.booking_time::text AS booking_time",
			"b.status",
			"b.amount",
			"b.created_at",
			"s.name AS service_name",
			"v.business_name AS vendor_name",
		).
		From("bookings b").
		LeftJoin("services s ON s.id = b.service_id").
		LeftJoin("vendor_profiles v ON v.id = b.vendor_id").
		OrderBy("b.created_at DESC").
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

	bookings, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Booking])
	if err != nil {
		r.logger.Error("failed to collect booking rows", "error", err)
		return nil, err
	}

	return bookings, nil
}
