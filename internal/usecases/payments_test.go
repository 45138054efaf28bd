package usecases

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"

	"github.com/bookeasy/admin-backend/internal/entities"
	"github.com/bookeasy/admin-backend/internal/payments/clients"
)

type fakeGateway struct {
	lastRequest entities.PaymentOrderRequest
	order       *entities.PaymentOrder
	err         error
}

func (f *fakeGateway) CreateOrder(_ context.Context, order entities.PaymentOrderRequest) (*entities.PaymentOrder, error) {
	f.lastRequest = order
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type fakePaymentLog struct {
	inserted []*entities.PaymentOrder
	err      error
}

func (f *fakePaymentLog) InsertPaymentOrder(_ context.Context, order *entities.PaymentOrder) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, order)
	return nil
}

func gatewayOrder() *entities.PaymentOrder {
	return &entities.PaymentOrder{
		ID:        "order_abc123",
		Entity:    "order",
		Amount:    5000,
		AmountDue: 5000,
		Currency:  "INR",
		Receipt:   "r1",
		Status:    "created",
		Notes:     map[string]any{},
		CreatedAt: 1756400000,
	}
}

func TestCreateOrderRejectsZeroAmount(t *testing.T) {
	svc := NewPaymentService(slog.Default(), &fakeGateway{}, &fakePaymentLog{})

	_, err := svc.CreateOrder(context.Background(), entities.PaymentOrderRequest{
		Amount: 0, Currency: "INR", Receipt: "r1",
	})
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.Contains(t, err.Error(), "greater than 0")
	require.True(t, IsValidationError(err))
}

func TestCreateOrderRejectsMissingFields(t *testing.T) {
	svc := NewPaymentService(slog.Default(), &fakeGateway{}, &fakePaymentLog{})

	_, err := svc.CreateOrder(context.Background(), entities.PaymentOrderRequest{Amount: 100})
	require.ErrorIs(t, err, ErrMissingFields)
	require.True(t, IsValidationError(err))
}

func TestCreateOrderDefaultsCaptureAndNotes(t *testing.T) {
	gw := &fakeGateway{order: gatewayOrder()}
	svc := NewPaymentService(slog.Default(), gw, &fakePaymentLog{})

	_, err := svc.CreateOrder(context.Background(), entities.PaymentOrderRequest{
		Amount: 5000, Currency: "INR", Receipt: "r1",
	})
	require.NoError(t, err)
	require.NotNil(t, gw.lastRequest.PaymentCapture)
	require.Equal(t, 1, *gw.lastRequest.PaymentCapture)
	require.NotNil(t, gw.lastRequest.Notes)
}

func TestCreateOrderKeepsExplicitCapture(t *testing.T) {
	gw := &fakeGateway{order: gatewayOrder()}
	svc := NewPaymentService(slog.Default(), gw, &fakePaymentLog{})

	_, err := svc.CreateOrder(context.Background(), entities.PaymentOrderRequest{
		Amount: 5000, Currency: "INR", Receipt: "r1", PaymentCapture: pointy.Int(0),
	})
	require.NoError(t, err)
	require.Equal(t, 0, *gw.lastRequest.PaymentCapture)
}

func TestCreateOrderRelaysGatewayError(t *testing.T) {
	gwErr := &clients.GatewayError{StatusCode: 502, Body: []byte(`{"error":"bad"}`)}
	svc := NewPaymentService(slog.Default(), &fakeGateway{err: gwErr}, &fakePaymentLog{})

	_, err := svc.CreateOrder(context.Background(), entities.PaymentOrderRequest{
		Amount: 5000, Currency: "INR", Receipt: "r1",
	})

	var relayed *clients.GatewayError
	require.ErrorAs(t, err, &relayed)
	require.Equal(t, 502, relayed.StatusCode)
	require.Equal(t, `{"error":"bad"}`, string(relayed.Body))
	require.False(t, IsValidationError(err))
}

func TestCreateOrderLogsBestEffort(t *testing.T) {
	logRepo := &fakePaymentLog{}
	svc := NewPaymentService(slog.Default(), &fakeGateway{order: gatewayOrder()}, logRepo)

	order, err := svc.CreateOrder(context.Background(), entities.PaymentOrderRequest{
		Amount: 5000, Currency: "INR", Receipt: "r1",
	})
	require.NoError(t, err)
	require.Equal(t, "order_abc123", order.ID)
	require.Len(t, logRepo.inserted, 1)
	require.Equal(t, order, logRepo.inserted[0])
}

func TestCreateOrderSwallowsLogFailure(t *testing.T) {
	logRepo := &fakePaymentLog{err: errors.New("insert denied")}
	svc := NewPaymentService(slog.Default(), &fakeGateway{order: gatewayOrder()}, logRepo)

	order, err := svc.CreateOrder(context.Background(), entities.PaymentOrderRequest{
		Amount: 5000, Currency: "INR", Receipt: "r1",
	})
	require.NoError(t, err)
	require.Equal(t, "order_abc123", order.ID)
}
