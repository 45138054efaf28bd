package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/stretchr/testify/require"

	"github.com/bookeasy/admin-backend/internal/entities"
	"github.com/bookeasy/admin-backend/internal/payments/clients"
	"github.com/bookeasy/admin-backend/internal/usecases"
)

type fakeOrderService struct {
	page       entities.OrderPage
	lastQuery  entities.OrderQuery
	refreshErr error
	csv        string
}

func (f *fakeOrderService) Refresh(context.Context) error {
	return f.refreshErr
}

func (f *fakeOrderService) Query(q entities.OrderQuery) entities.OrderPage {
	f.lastQuery = q
	return f.page
}

func (f *fakeOrderService) ExportCSV(w io.Writer, q entities.OrderQuery) error {
	f.lastQuery = q
	_, err := io.WriteString(w, f.csv)
	return err
}

type fakePaymentService struct {
	order *entities.PaymentOrder
	err   error
}

func (f *fakePaymentService) CreateOrder(context.Context, entities.PaymentOrderRequest) (*entities.PaymentOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type fakeCatalogService struct{}

func (fakeCatalogService) ListServices(context.Context, string, string, string) ([]entities.Service, error) {
	return []entities.Service{}, nil
}

func (fakeCatalogService) SetServiceFeatured(context.Context, string, bool) error {
	return nil
}

func (fakeCatalogService) ListVendors(context.Context) ([]entities.Vendor, error) {
	return []entities.Vendor{}, nil
}

func (fakeCatalogService) ListUsers(context.Context) ([]entities.UserProfile, error) {
	return []entities.UserProfile{}, nil
}

type fakeAssetService struct{}

func (fakeAssetService) ListBanners(context.Context) ([]entities.Asset, error) {
	return []entities.Asset{}, nil
}

func (fakeAssetService) CreateBanner(_ context.Context, asset entities.Asset) (*entities.Asset, error) {
	asset.ID = "asset-1"
	return &asset, nil
}

func (fakeAssetService) DeleteBanner(context.Context, string) error {
	return nil
}

func newTestRouter(orders *fakeOrderService, payments *fakePaymentService) http.Handler {
	h := NewHTTPHandler(slog.Default(), orders, fakeCatalogService{}, payments, fakeAssetService{})
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:       []string{"Content-Type", "Authorization", "X-Client-Info", "Apikey"},
		OptionsSuccessStatus: http.StatusOK,
	})
	return c.Handler(router)
}

func TestListOrdersParsesQuery(t *testing.T) {
	orders := &fakeOrderService{page: entities.OrderPage{
		Items: []entities.Booking{}, Page: 1, PageSize: 10, TotalPages: 1,
	}}
	handler := newTestRouter(orders, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders?search=acme&status=pending&sort_by=amount&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	require.Equal(t, "acme", orders.lastQuery.Search)
	require.Equal(t, "pending", orders.lastQuery.Status)
	require.Equal(t, "amount", orders.lastQuery.SortBy)
	require.Equal(t, "asc", orders.lastQuery.SortDir) // explicit keys start ascending
	require.Equal(t, 2, orders.lastQuery.Page)
	require.Equal(t, 10, orders.lastQuery.PageSize)
}

func TestListOrdersDefaults(t *testing.T) {
	orders := &fakeOrderService{}
	handler := newTestRouter(orders, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "all", orders.lastQuery.Status)
	require.Equal(t, "desc", orders.lastQuery.SortDir)
}

func TestRefreshOrdersSurfacesStoreError(t *testing.T) {
	orders := &fakeOrderService{refreshErr: errors.New(`relation "bookings" does not exist`)}
	handler := newTestRouter(orders, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders/refresh", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "does not exist")
}

func TestExportOrdersSetsDownloadHeaders(t *testing.T) {
	orders := &fakeOrderService{csv: "ID,Service\n"}
	handler := newTestRouter(orders, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/export", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv;charset=utf-8", rec.Header().Get("Content-Type"))

	disposition := rec.Header().Get("Content-Disposition")
	require.Contains(t, disposition, "attachment")
	require.Contains(t, disposition, "orders_"+time.Now().UTC().Format("2006-01-02")+".csv")
	require.Equal(t, "ID,Service\n", rec.Body.String())
}

func TestCreatePaymentOrderValidation(t *testing.T) {
	handler := newTestRouter(&fakeOrderService{}, &fakePaymentService{err: usecases.ErrInvalidAmount})

	body := strings.NewReader(`{"amount":0,"currency":"INR","receipt":"r1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/orders", body)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "amount must be greater than 0")
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreatePaymentOrderRelaysGatewayStatus(t *testing.T) {
	payments := &fakePaymentService{err: &clients.GatewayError{
		StatusCode: http.StatusBadGateway,
		Body:       []byte(`{"error":"bad"}`),
	}}
	handler := newTestRouter(&fakeOrderService{}, payments)

	body := strings.NewReader(`{"amount":5000,"currency":"INR","receipt":"r1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/orders", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "bad")
}

func TestCreatePaymentOrderSuccess(t *testing.T) {
	payments := &fakePaymentService{order: &entities.PaymentOrder{
		ID: "order_xyz", Status: "created", Amount: 5000, Currency: "INR", Receipt: "r1",
	}}
	handler := newTestRouter(&fakeOrderService{}, payments)

	body := strings.NewReader(`{"amount":5000,"currency":"INR","receipt":"r1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/orders", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.PaymentOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "order_xyz", got.ID)
	require.Equal(t, "created", got.Status)
}

func TestPaymentPreflightAllowsOpenOrigin(t *testing.T) {
	handler := newTestRouter(&fakeOrderService{}, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/payments/orders", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
