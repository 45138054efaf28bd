package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bookeasy/admin-backend/internal/core/ports"
	"github.com/bookeasy/admin-backend/internal/entities"
	"github.com/bookeasy/admin-backend/internal/payments/clients"
	"github.com/bookeasy/admin-backend/internal/usecases"
)

var (
	_ OrderService   = (*usecases.OrderService)(nil)
	_ CatalogService = (*usecases.CatalogService)(nil)
	_ PaymentService = (*usecases.PaymentService)(nil)
	_ AssetService   = (*usecases.AssetService)(nil)
)

type HTTPHandler struct {
	logger         *slog.Logger
	orderService   OrderService
	catalogService CatalogService
	paymentService PaymentService
	assetService   AssetService
}

func NewHTTPHandler(
	logger *slog.Logger,
	orderService OrderService,
	catalogService CatalogService,
	paymentService PaymentService,
	assetService AssetService,
) *HTTPHandler {
	return &HTTPHandler{
		logger:         logger,
		orderService:   orderService,
		catalogService: catalogService,
		paymentService: paymentService,
		assetService:   assetService,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	// Orders
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders/refresh", h.RefreshOrders).Methods("POST")
	router.HandleFunc("/api/orders/export", h.ExportOrders).Methods("GET")

	// Payments
	router.HandleFunc("/api/payments/orders", h.CreatePaymentOrder).Methods("POST")

	// Catalog
	router.HandleFunc("/api/services", h.ListServices).Methods("GET")
	router.HandleFunc("/api/services/{serviceId}/featured", h.SetServiceFeatured).Methods("PATCH")
	router.HandleFunc("/api/vendors", h.ListVendors).Methods("GET")
	router.HandleFunc("/api/users", h.ListUsers).Methods("GET")

	// Banners
	router.HandleFunc("/api/banners", h.ListBanners).Methods("GET")
	router.HandleFunc("/api/banners", h.CreateBanner).Methods("POST")
	router.HandleFunc("/api/banners/{assetId}", h.DeleteBanner).Methods("DELETE")

	router.HandleFunc("/health", h.Health).Methods("GET")
}

func orderQueryFromRequest(r *http.Request) entities.OrderQuery {
	params := r.URL.Query()

	page, _ := strconv.Atoi(params.Get("page"))
	pageSize, _ := strconv.Atoi(params.Get("page_size"))

	status := params.Get("status")
	if status == "" {
		status = ports.StatusAll
	}

	sortBy := params.Get("sort_by")
	sortDir := params.Get("sort_dir")
	if sortDir == "" {
		// Newest first by default; explicit sort keys start ascending.
		if sortBy == "" || sortBy == ports.SortByCreatedAt {
			sortDir = ports.SortDesc
		} else {
			sortDir = ports.SortAsc
		}
	}

	return entities.OrderQuery{
		Search:   params.Get("search"),
		Status:   status,
		SortBy:   sortBy,
		SortDir:  sortDir,
		Page:     page,
		PageSize: pageSize,
	}
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := h.orderService.Query(orderQueryFromRequest(r))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		h.logger.Error("Error encoding orders page", "error", err)
	}
}

func (h *HTTPHandler) RefreshOrders(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.Refresh(r.Context()); err != nil {
		h.logger.Error("Error refreshing orders window", "error", err)
		// The store's error message is surfaced verbatim.
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	page := h.orderService.Query(orderQueryFromRequest(r))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (h *HTTPHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("orders_%s.csv", time.Now().UTC().Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/csv;charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.orderService.ExportCSV(w, orderQueryFromRequest(r)); err != nil {
		h.logger.Error("Error exporting orders CSV", "error", err)
	}
}

func (h *HTTPHandler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req entities.PaymentOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.paymentService.CreateOrder(r.Context(), req)
	if err != nil {
		if usecases.IsValidationError(err) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		var gwErr *clients.GatewayError
		if errors.As(err, &gwErr) {
			// Relay the gateway's status code and raw error body.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(gwErr.StatusCode)
			json.NewEncoder(w).Encode(map[string]any{
				"error":   "failed to create payment order",
				"details": string(gwErr.Body),
			})
			return
		}

		h.logger.Error("Error creating payment order", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(order); err != nil {
		h.logger.Error("Error encoding payment order", "error", err)
	}
}

func (h *HTTPHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	services, err := h.catalogService.ListServices(r.Context(), params.Get("search"), params.Get("sort_by"), params.Get("sort_dir"))
	if err != nil {
		h.logger.Error("Error listing services", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services)
}

func (h *HTTPHandler) SetServiceFeatured(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]

	var body struct {
		IsFeatured *bool `json:"is_featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IsFeatured == nil {
		writeJSONError(w, http.StatusBadRequest, "missing required field: is_featured")
		return
	}

	if err := h.catalogService.SetServiceFeatured(r.Context(), serviceID, *body.IsFeatured); err != nil {
		h.logger.Error("Error updating service", "error", err, "service_id", serviceID)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":      "success",
		"service_id":  serviceID,
		"is_featured": *body.IsFeatured,
	})
}

func (h *HTTPHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.catalogService.ListVendors(r.Context())
	if err != nil {
		h.logger.Error("Error listing vendors", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendors)
}

func (h *HTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.catalogService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Error listing users", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func (h *HTTPHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.assetService.ListBanners(r.Context())
	if err != nil {
		h.logger.Error("Error listing banners", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(banners)
}

func (h *HTTPHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var asset entities.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.assetService.CreateBanner(r.Context(), asset)
	if err != nil {
		h.logger.Error("Error creating banner", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *HTTPHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	assetID := vars["assetId"]

	if err := h.assetService.DeleteBanner(r.Context(), assetID); err != nil {
		h.logger.Error("Error deleting banner", "error", err, "asset_id", assetID)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "success"})
}

func (h *HTTPHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
