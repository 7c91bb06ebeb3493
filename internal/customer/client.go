// Package customer is a read-side client for the customer profile service.
// Payment session init needs the customer's contact fields; everything else
// about customers is out of this service's hands.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	PhoneNo string `json:"phone_no"`
	Address string `json:"address,omitempty"`
}

type Fetcher interface {
	FetchCustomer(ctx context.Context, id string) (*Profile, error)
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
	}
}

func (c *Client) FetchCustomer(ctx context.Context, id string) (*Profile, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/customers/%s", c.BaseURL, id), nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("customer not found")
	}
	var p Profile
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
