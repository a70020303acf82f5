package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

// HTTPDestination posts the checklist as JSON to an arbitrary URL, with
// caller-supplied headers.
type HTTPDestination struct {
	name    string
	url     string
	headers map[string]string
	filter  Filter
	retry   RetryConfig
	client  *http.Client
}

// NewHTTPDestination builds a generic HTTP webhook destination.
func NewHTTPDestination(name, url string, headers map[string]string, filter Filter, retry RetryConfig, client *http.Client) *HTTPDestination {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPDestination{name: name, url: url, headers: headers, filter: filter, retry: retry, client: client}
}

func (d *HTTPDestination) Name() string       { return d.name }
func (d *HTTPDestination) Type() string       { return "http" }
func (d *HTTPDestination) Filter() Filter     { return d.filter }
func (d *HTTPDestination) Retry() RetryConfig { return d.retry }

func (d *HTTPDestination) ShouldSend(severity string, labels map[string]string) bool {
	return d.filter.admits(severity, labels)
}

func (d *HTTPDestination) Attempt(ctx context.Context, c checklist.Checklist) DeliveryResult {
	body, err := json.Marshal(c)
	if err != nil {
		return DeliveryResult{Success: false, Err: fmt.Errorf("encode checklist: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{Success: false, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range d.headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return DeliveryResult{Success: false, Err: err}
	}
	defer resp.Body.Close()

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	var sendErr error
	if !success {
		sendErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return DeliveryResult{Success: success, StatusCode: resp.StatusCode, Err: sendErr}
}
