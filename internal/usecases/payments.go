package usecases

import (
	"context"
	"errors"
	"log/slog"

	"go.openly.dev/pointy"

	"github.com/bookeasy/admin-backend/internal/entities"
)

var (
	ErrMissingFields = errors.New("missing required fields: amount, currency, receipt")
	ErrInvalidAmount = errors.New("amount must be greater than 0")
)

type PaymentGateway interface {
	CreateOrder(ctx context.Context, order entities.PaymentOrderRequest) (*entities.PaymentOrder, error)
}

type PaymentLogRepository interface {
	InsertPaymentOrder(ctx context.Context, order *entities.PaymentOrder) error
}

// PaymentService is the order-creation proxy: validate, forward to the
// gateway, best-effort log. No retries, no reconciliation.
type PaymentService struct {
	logger  *slog.Logger
	gateway PaymentGateway
	log     PaymentLogRepository
}

func NewPaymentService(logger *slog.Logger, gateway PaymentGateway, log PaymentLogRepository) *PaymentService {
	return &PaymentService{logger: logger, gateway: gateway, log: log}
}

// IsValidationError reports whether err is one of the fixed input validation
// errors that map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidAmount)
}

func (ps *PaymentService) CreateOrder(ctx context.Context, req entities.PaymentOrderRequest) (*entities.PaymentOrder, error) {
	if req.Currency == "" || req.Receipt == "" {
		return nil, ErrMissingFields
	}
	// An absent amount decodes as zero and fails the same check.
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	normalized := entities.PaymentOrderRequest{
		Amount:         req.Amount,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		Notes:          req.Notes,
		PaymentCapture: req.PaymentCapture,
	}
	if normalized.Notes == nil {
		normalized.Notes = map[string]any{}
	}
	if normalized.PaymentCapture == nil {
		// Auto-capture by default.
		normalized.PaymentCapture = pointy.Int(1)
	}

	order, err := ps.gateway.CreateOrder(ctx, normalized)
	if err != nil {
		return nil, err
	}

	// Best-effort log write: a failure here never changes the caller-visible
	// result.
	if logErr := ps.log.InsertPaymentOrder(ctx, order); logErr != nil {
		ps.logger.Warn("Failed to log payment order", "order_id", order.ID, "error", logErr)
	}

	return order, nil
}
