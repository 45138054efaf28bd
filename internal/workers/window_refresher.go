package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookeasy/admin-backend/internal/core/ports"
)

// WindowRefresher periodically re-runs the bounded orders fetch so the
// dashboard window tracks the table without a manual refresh.
type WindowRefresher struct {
	logger       *slog.Logger
	orderService ports.OrderService

	refreshInterval time.Duration
}

func NewWindowRefresher(logger *slog.Logger, orderService ports.OrderService, refreshInterval time.Duration) *WindowRefresher {
	return &WindowRefresher{
		logger:          logger,
		orderService:    orderService,
		refreshInterval: refreshInterval,
	}
}

// Start runs an initial refresh immediately, then keeps refreshing on the
// ticker until the context is cancelled. Failures are logged and the loop
// continues.
func (wr *WindowRefresher) Start(ctx context.Context) {
	wr.logger.Info("Starting orders window refresher", "interval", wr.refreshInterval.String())

	if err := wr.orderService.Refresh(ctx); err != nil {
		wr.logger.Error("Initial orders refresh failed", "error", err)
	}

	ticker := time.NewTicker(wr.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wr.logger.Info("Orders window refresher stopped")
			return
		case <-ticker.C:
			if err := wr.orderService.Refresh(ctx); err != nil {
				wr.logger.Error("Orders refresh failed", "error", err)
			}
		}
	}
}
