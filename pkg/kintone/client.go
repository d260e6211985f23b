package kintone

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	maxPageSize       = 500
	defaultMaxRecords = 500
	recordsPath       = "/k/v1/records.json"
	tokenHeader       = "X-Cybozu-API-Token"
	orderClause       = "order by Record_number desc"
)

// NewClient instantiates a Kintone API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.APIToken == "" {
		return nil, fmt.Errorf("kintone: app id and api token are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Domain == "" {
			return nil, fmt.Errorf("kintone: domain is required")
		}
		baseURL = "https://" + cfg.Domain
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecords
	}

	return &Client{
		appID:      cfg.AppID,
		apiToken:   cfg.APIToken,
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   pageSize,
		maxRecords: maxRecords,
	}, nil
}

// FetchRecords pages through the app newest-first until the upstream runs
// out of records or maxRecords is reached
func (c *Client) FetchRecords(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("kintone: client is nil")
	}

	var out []Record
	for offset := 0; offset < c.maxRecords; offset += c.pageSize {
		limit := min(c.pageSize, c.maxRecords-offset)

		page, err := c.fetchPage(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)

		if len(page) < limit {
			break
		}
	}

	if out == nil {
		out = []Record{}
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, limit, offset int) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildRecordsURL(limit, offset), nil)
	if err != nil {
		return nil, fmt.Errorf("kintone: build request: %w", err)
	}
	req.Header.Set(tokenHeader, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kintone: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload recordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("kintone: decode response: %w", err)
	}

	return payload.Records, nil
}

func (c *Client) buildRecordsURL(limit, offset int) string {
	values := url.Values{}
	values.Set("app", c.appID)
	values.Set("query", fmt.Sprintf("%s limit %d offset %d", orderClause, limit, offset))

	return c.baseURL + recordsPath + "?" + values.Encode()
}
