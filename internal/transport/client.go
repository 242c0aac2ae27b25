package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandeepkv93/medtui/internal/model"
)

const (
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// APIError is a non-2xx response from the remote medication API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("transport: status %d", e.StatusCode)
	}
	return fmt.Sprintf("transport: status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the remote medication REST API. Calls are plain
// request/response with an explicit timeout and no automatic retries;
// recovery from failure is the reconcile layer's job.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	return NewClientWithTransport(baseURL, timeout, nil)
}

// NewClientWithTransport allows injecting a RoundTripper, mainly for tests.
func NewClientWithTransport(baseURL string, timeout time.Duration, rt http.RoundTripper) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("transport: base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("transport: invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: rt,
		},
	}, nil
}

type CreateMedicationFields struct {
	Name     string
	Dosage   string
	Times    []string
	Days     []string
	Timezone string
	IsActive bool
}

type listResponse struct {
	Status      string            `json:"status"`
	Medications []json.RawMessage `json:"medications"`
	Count       int               `json:"count"`
	Error       string            `json:"error"`
}

type createResponse struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Medication json.RawMessage `json:"medication"`
	Error      string          `json:"error"`
}

type ackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) ListMedications(ctx context.Context, userID string) ([]model.Medication, error) {
	path := "/medications?user_id=" + url.QueryEscape(userID)
	var resp listResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("transport: list medications: %s", firstNonEmpty(resp.Error, resp.Status))
	}
	out := make([]model.Medication, 0, len(resp.Medications))
	for _, raw := range resp.Medications {
		med, err := DecodeMedication(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, med)
	}
	return out, nil
}

func (c *Client) CreateMedication(ctx context.Context, userID string, fields CreateMedicationFields) (model.Medication, error) {
	payload := map[string]any{
		"user_id":         userID,
		"medication_name": fields.Name,
		"dosage":          fields.Dosage,
		"times":           fields.Times,
		"days_of_week":    fields.Days,
		"timezone":        fields.Timezone,
		"is_active":       fields.IsActive,
	}
	var resp createResponse
	if err := c.doJSON(ctx, http.MethodPost, "/medications", payload, &resp); err != nil {
		return model.Medication{}, err
	}
	if resp.Status != "success" || len(resp.Medication) == 0 {
		return model.Medication{}, fmt.Errorf("transport: create medication: %s", firstNonEmpty(resp.Error, resp.Status))
	}
	return DecodeMedication(resp.Medication)
}

func (c *Client) RecordDoseEvent(ctx context.Context, userID, medicationName, status, confirmationMethod string) error {
	payload := map[string]any{
		"user_id":             userID,
		"medication_name":     medicationName,
		"status":              status,
		"confirmation_method": confirmationMethod,
	}
	var resp ackResponse
	if err := c.doJSON(ctx, http.MethodPost, "/logs", payload, &resp); err != nil {
		return err
	}
	if resp.Status != "success" {
		return fmt.Errorf("transport: record dose event: %s", firstNonEmpty(resp.Error, resp.Status))
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("transport: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("transport: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("transport: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("transport: unmarshal response: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "unknown"
}
