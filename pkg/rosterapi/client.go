package rosterapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tailorshop/internal/model"
	"tailorshop/pkg/config"
	"tailorshop/pkg/logger"

	"github.com/tidwall/pretty"
)

const (
	opFetch  = "fetch"
	opCreate = "create"
	opSearch = "search"

	maxLoggedBody = 1000
)

// Client is the remote roster service client
type Client struct {
	baseURL    string
	listPath   string
	createPath string
	searchPath string
	httpClient *http.Client
}

// NewClient creates a new roster service client
func NewClient(cfg *config.RosterConfig) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		listPath:   orDefault(cfg.ListPath, config.DefaultListPath),
		createPath: orDefault(cfg.CreatePath, config.DefaultCreatePath),
		searchPath: orDefault(cfg.SearchPath, config.DefaultSearchPath),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchAll lists the full roster
func (c *Client) FetchAll(ctx context.Context, token string) ([]model.Worker, error) {
	respData, err := c.doRequest(ctx, opFetch, http.MethodGet, c.baseURL+c.listPath, token, nil)
	if err != nil {
		return nil, err
	}

	var resp listEnvelope
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, &APIError{Kind: ErrServer, Op: opFetch, Err: fmt.Errorf("failed to parse list response: %w", err)}
	}

	return ToWorkers(resp.Workers), nil
}

// Create submits a new worker. The returned record may be partial; callers should re-fetch.
func (c *Client) Create(ctx context.Context, req *model.CreateWorkerRequest, token string) (*model.Worker, error) {
	payload := ToCreatePayload(req)

	respData, err := c.doRequest(ctx, opCreate, http.MethodPost, c.baseURL+c.createPath, token, payload)
	if err != nil {
		return nil, err
	}

	var resp createEnvelope
	if len(bytes.TrimSpace(respData)) > 0 {
		if err := json.Unmarshal(respData, &resp); err != nil {
			return nil, &APIError{Kind: ErrServer, Op: opCreate, Err: fmt.Errorf("failed to parse create response: %w", err)}
		}
	}

	worker := ToWorker(resp.Worker)
	return &worker, nil
}

// Search queries workers by name. Results may lack fields present in the full roster.
func (c *Client) Search(ctx context.Context, query, token string) ([]model.Worker, error) {
	u := c.baseURL + c.searchPath + "?" + url.Values{"q": {query}}.Encode()

	respData, err := c.doRequest(ctx, opSearch, http.MethodGet, u, token, nil)
	if err != nil {
		return nil, err
	}

	var resp listEnvelope
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, &APIError{Kind: ErrServer, Op: opSearch, Err: fmt.Errorf("failed to parse search response: %w", err)}
	}

	return ToWorkers(resp.Workers), nil
}

// doRequest performs an HTTP request with bearer authentication and classifies failures
func (c *Client) doRequest(ctx context.Context, op, method, url, token string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: ErrServer, Op: op, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		reqBody = bytes.NewReader(jsonData)
		logger.DebugCtx(ctx, "Roster API Request: %s %s, Body: %s", method, url, compact(jsonData))
	} else {
		logger.DebugCtx(ctx, "Roster API Request: %s %s", method, url)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &APIError{Kind: ErrNetwork, Op: op, Err: fmt.Errorf("failed to create HTTP request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: ErrNetwork, Op: op, Err: fmt.Errorf("failed to execute HTTP request: %w", err)}
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: ErrNetwork, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	logger.DebugCtx(ctx, "Roster API Response: Status %d, Body: %s", resp.StatusCode, compact(respData))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Kind:       classifyStatus(op, resp.StatusCode),
			Op:         op,
			StatusCode: resp.StatusCode,
		}
		var errResp ErrorResponse
		if err := json.Unmarshal(respData, &errResp); err == nil {
			apiErr.Message = errResp.text()
			apiErr.Fields = errResp.Fields
		} else {
			apiErr.Message = strings.TrimSpace(string(respData))
		}
		return nil, apiErr
	}

	return respData, nil
}

// compact strips whitespace from JSON bodies and truncates them for logging
func compact(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	out := pretty.Ugly(body)
	if len(out) > maxLoggedBody {
		return string(out[:maxLoggedBody]) + "..."
	}
	return string(out)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
