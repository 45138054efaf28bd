package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tx "github.com/Thiht/transactor/pgx"

	"github.com/bookeasy/admin-backend/internal/entities"
	"github.com/bookeasy/admin-backend/pkg/database"
)

// PaymentsRepository keeps the append-only log of created gateway orders.
type PaymentsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewPaymentsRepository(logger *slog.Logger, pg *database.Postgres) *PaymentsRepository {
	return &PaymentsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

// InsertPaymentOrder records a created gateway order. The gateway reports
// creation time as epoch seconds; it is stored as a timestamp.
func (r *PaymentsRepository) InsertPaymentOrder(ctx context.Context, order *entities.PaymentOrder) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO payment_orders (gateway_order_id, amount, currency, receipt, status, notes, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.Amount, order.Currency, order.Receipt, order.Status,
		order.Notes, time.Unix(order.CreatedAt, 0).UTC())
	if err != nil {
		return fmt.Errorf("failed to insert payment order: %w", err)
	}
	return nil
}
