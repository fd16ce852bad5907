package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/graphd/internal/model"
)

// HTTPClient implements GraphClient using the graphd HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Graph CRUD ---

func (c *HTTPClient) CreateGraph(ctx context.Context, req *model.GraphCreate) (*model.GraphResponse, error) {
	var g model.GraphResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/graphs", req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) GetGraph(ctx context.Context, id string) (*model.GraphResponse, error) {
	var g model.GraphResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/graphs/"+url.PathEscape(id), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) ListGraphs(ctx context.Context, req *ListGraphsRequest) (*ListGraphsResponse, error) {
	q := url.Values{}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/graphs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListGraphsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateGraph(ctx context.Context, id string, req *model.GraphUpdate) (*model.GraphResponse, error) {
	var g model.GraphResponse
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/graphs/"+url.PathEscape(id), req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) DeleteGraph(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/graphs/"+url.PathEscape(id), nil, nil)
}

// --- Documents ---

func (c *HTTPClient) ImportGraph(ctx context.Context, doc *model.GraphInput) (*model.GraphResponse, error) {
	var g model.GraphResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/graphs/import", doc, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) ExportGraph(ctx context.Context, id string) (*model.GraphExport, error) {
	var export model.GraphExport
	if err := c.doJSON(ctx, http.MethodGet, "/v1/graphs/"+url.PathEscape(id)+"/export", nil, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

// --- Nodes ---

func (c *HTTPClient) CreateNode(ctx context.Context, graphID string, req *model.NodeCreate) (*model.NodeResponse, error) {
	var n model.NodeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/graphs/"+url.PathEscape(graphID)+"/nodes", req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) GetNode(ctx context.Context, id string) (*model.NodeResponse, error) {
	var n model.NodeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/nodes/"+url.PathEscape(id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) ListNodes(ctx context.Context, graphID string) ([]*model.NodeResponse, error) {
	var resp struct {
		Nodes []*model.NodeResponse `json:"nodes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/graphs/"+url.PathEscape(graphID)+"/nodes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

func (c *HTTPClient) UpdateNode(ctx context.Context, id string, req *model.NodeUpdate) (*model.NodeResponse, error) {
	var n model.NodeResponse
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/nodes/"+url.PathEscape(id), req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) DeleteNode(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/nodes/"+url.PathEscape(id), nil, nil)
}

// --- Edges ---

func (c *HTTPClient) CreateEdge(ctx context.Context, graphID string, req *model.EdgeCreate) (*model.EdgeResponse, error) {
	var e model.EdgeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/graphs/"+url.PathEscape(graphID)+"/edges", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) GetEdge(ctx context.Context, id string) (*model.EdgeResponse, error) {
	var e model.EdgeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/edges/"+url.PathEscape(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) ListEdges(ctx context.Context, graphID string) ([]*model.EdgeResponse, error) {
	var resp struct {
		Edges []*model.EdgeResponse `json:"edges"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/graphs/"+url.PathEscape(graphID)+"/edges", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Edges, nil
}

func (c *HTTPClient) UpdateEdge(ctx context.Context, id string, req *model.EdgeUpdate) (*model.EdgeResponse, error) {
	var e model.EdgeResponse
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/edges/"+url.PathEscape(id), req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) DeleteEdge(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/edges/"+url.PathEscape(id), nil, nil)
}

// --- Aggregates ---

func (c *HTTPClient) GetStats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) GetEvents(ctx context.Context, graphID string) ([]*model.Event, error) {
	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/graphs/"+url.PathEscape(graphID)+"/events", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
