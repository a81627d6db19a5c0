package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Request is the advisory recommendation query.
type Request struct {
	BrowsingContext string `json:"browsing_context"`
	PurchaseContext string `json:"purchase_context"`
}

// Response carries suggested product names. Names are opaque advisory data;
// mapping them back to catalog entries is the consumer's problem.
type Response struct {
	Recommendations []string `json:"recommendations"`
}

// Recommender is the external suggestion source. Implementations must be
// failure-tolerant callees: a slow or failing recommender never blocks cart
// operations, only this advisory path.
type Recommender interface {
	Recommend(ctx context.Context, req *Request) (*Response, error)
}

// HTTPRecommender calls a remote recommendation endpoint over JSON.
type HTTPRecommender struct {
	endpoint string
	client   *http.Client
}

// NewHTTPRecommender creates a client with a bounded request timeout.
func NewHTTPRecommender(endpoint string, timeout time.Duration) *HTTPRecommender {
	return &HTTPRecommender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Recommend posts the query and decodes the suggested names.
func (r *HTTPRecommender) Recommend(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build recommendation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendation request failed: status %d", httpResp.StatusCode)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation response: %w", err)
	}
	return &resp, nil
}
