package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway is the online-payment provider surface this service needs: hosted
// checkout session creation and independent server-side validation of a
// callback. The production implementation talks to an SSLCommerz-compatible
// API; tests substitute a fake.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error)
	ValidateTransaction(ctx context.Context, valID string) (*ValidationResponse, error)
}

type SessionRequest struct {
	Amount   string
	Currency string
	TranID   string

	SuccessURL string
	FailURL    string
	CancelURL  string
	IPNURL     string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string

	ProductName     string
	ProductCategory string
}

type SessionResponse struct {
	Status         string `json:"status"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
	FailedReason   string `json:"failedreason"`
	// Raw is the full provider payload, persisted alongside the transaction.
	Raw json.RawMessage `json:"-"`
}

type ValidationResponse struct {
	Status   string          `json:"status"`
	ValID    string          `json:"val_id"`
	TranID   string          `json:"tran_id"`
	Amount   string          `json:"amount"`
	Currency string          `json:"currency"`
	Raw      json.RawMessage `json:"-"`
}

// Valid reports whether the gateway confirmed the payment. The provider
// answers VALID on first validation and VALIDATED on revalidation.
func (v *ValidationResponse) Valid() bool {
	return v.Status == "VALID" || v.Status == "VALIDATED"
}

const (
	sandboxBaseURL = "https://sandbox.sslcommerz.com"
	liveBaseURL    = "https://securepay.sslcommerz.com"
)

// SSLCommerz is a stateless capability object: credentials plus an HTTP
// client with a bounded timeout, constructed once at wiring time.
type SSLCommerz struct {
	StoreID       string
	StorePassword string
	BaseURL       string
	HTTP          *http.Client
}

// NewSSLCommerz builds the adapter. baseURL overrides the sandbox/live
// endpoint (used by tests); leave it empty for the real provider.
func NewSSLCommerz(storeID, storePassword string, live bool, baseURL string) *SSLCommerz {
	if baseURL == "" {
		if live {
			baseURL = liveBaseURL
		} else {
			baseURL = sandboxBaseURL
		}
	}
	return &SSLCommerz{
		StoreID:       storeID,
		StorePassword: storePassword,
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTP:          &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *SSLCommerz) CreateSession(ctx context.Context, sr SessionRequest) (*SessionResponse, error) {
	form := url.Values{}
	form.Set("store_id", g.StoreID)
	form.Set("store_passwd", g.StorePassword)
	form.Set("total_amount", sr.Amount)
	form.Set("currency", sr.Currency)
	form.Set("tran_id", sr.TranID)
	form.Set("success_url", sr.SuccessURL)
	form.Set("fail_url", sr.FailURL)
	form.Set("cancel_url", sr.CancelURL)
	form.Set("ipn_url", sr.IPNURL)
	form.Set("shipping_method", "Delivery")
	form.Set("product_name", sr.ProductName)
	form.Set("product_category", sr.ProductCategory)
	form.Set("product_profile", "general")
	form.Set("cus_name", sr.CustomerName)
	form.Set("cus_email", sr.CustomerEmail)
	form.Set("cus_add1", sr.Address)
	form.Set("cus_phone", sr.CustomerPhone)
	form.Set("ship_name", sr.CustomerName)
	form.Set("ship_add1", sr.Address)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.BaseURL+"/gwprocess/v4/api.php", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := g.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway session init: %s", res.Status)
	}

	var out SessionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("gateway session init: bad response: %w", err)
	}
	out.Raw = json.RawMessage(body)
	return &out, nil
}

func (g *SSLCommerz) ValidateTransaction(ctx context.Context, valID string) (*ValidationResponse, error) {
	q := url.Values{}
	q.Set("val_id", valID)
	q.Set("store_id", g.StoreID)
	q.Set("store_passwd", g.StorePassword)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.BaseURL+"/validator/api/validationserverAPI.php?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := g.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway validation: %s", res.Status)
	}

	var out ValidationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("gateway validation: bad response: %w", err)
	}
	out.Raw = json.RawMessage(body)
	return &out, nil
}
