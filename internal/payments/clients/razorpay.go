package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookeasy/admin-backend/internal/entities"
)

const defaultAPIURL = "https://api.razorpay.com"

// GatewayError carries a non-success gateway response so the caller can
// relay the status code and raw body unchanged.
type GatewayError struct {
	StatusCode int
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, string(e.Body))
}

// RazorpayClient creates orders against the Razorpay REST API using basic
// auth service credentials.
type RazorpayClient struct {
	logger    *slog.Logger
	keyID     string
	keySecret string
	apiURL    string
	client    *http.Client
}

func NewRazorpayClient(logger *slog.Logger, keyID, keySecret, apiURL string) *RazorpayClient {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	if keyID == "" || keySecret == "" {
		logger.Warn("Razorpay client created without credentials, order creation will fail")
	} else {
		logger.Info("Razorpay client initialized", "api_url", apiURL)
	}

	return &RazorpayClient{
		logger:    logger,
		keyID:     keyID,
		keySecret: keySecret,
		apiURL:    apiURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrder posts the order to the gateway. A non-2xx response comes back
// as *GatewayError with the raw body preserved.
func (c *RazorpayClient) CreateOrder(ctx context.Context, order entities.PaymentOrderRequest) (*entities.PaymentOrder, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	endpoint := c.apiURL + "/v1/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}

	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	c.logger.InfoContext(ctx, "Creating gateway order",
		"amount", order.Amount,
		"currency", order.Currency,
		"receipt", order.Receipt)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.ErrorContext(ctx, "Gateway rejected order",
			"status", resp.StatusCode,
			"body", string(body))
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: body}
	}

	var created entities.PaymentOrder
	if err = json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode gateway order: %w", err)
	}

	c.logger.InfoContext(ctx, "Gateway order created", "order_id", created.ID, "status", created.Status)

	return &created, nil
}
