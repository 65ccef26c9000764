package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jask/tenantadmin/internal/management"
	"github.com/jask/tenantadmin/internal/service"
)

var _ management.Backend = (*Client)(nil)

// Client is a management.Backend talking to a remote Server.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchCompanies(ctx context.Context) ([]management.Company, error) {
	var out []management.Company
	if err := c.do(ctx, "fetch companies", http.MethodGet, "/api/companies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchActivePlans(ctx context.Context) ([]management.SubscriptionPlan, error) {
	var out []management.SubscriptionPlan
	if err := c.do(ctx, "fetch plans", http.MethodGet, "/api/plans/active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterCompany(ctx context.Context, form management.FormState) (management.RegisterResult, error) {
	var out management.RegisterResult
	err := c.do(ctx, "register company", http.MethodPost, "/api/companies", form, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &service.ServiceError{Op: op, Err: err}
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return &service.ServiceError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &service.ServiceError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg messageBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&msg)
		return &service.ServiceError{
			Op:      op,
			Message: msg.Message,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &service.ServiceError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
