package kintone

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
)

// Config defines Kintone REST API client settings
type Config struct {
	Domain     string // e.g. example.cybozu.com
	AppID      string
	APIToken   string
	BaseURL    string // overrides https://<Domain>, used by tests
	HTTPClient *http.Client
	PageSize   int // records per request, at most 500
	MaxRecords int // upper bound across all pages
}

// Client reads records from a Kintone app
type Client struct {
	appID      string
	apiToken   string
	baseURL    string
	httpClient *http.Client
	pageSize   int
	maxRecords int
}

// Field is one Kintone field value as returned by the records API
type Field struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Record maps field codes to values
type Record map[string]Field

// String returns the field value when it is a JSON string, "" otherwise
func (r Record) String(code string) string {
	f, ok := r[code]
	if !ok || len(f.Value) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(f.Value, &s); err != nil {
		return ""
	}
	return s
}

type recordsResponse struct {
	Records    []Record `json:"records"`
	TotalCount *string  `json:"totalCount"`
}

// APIError is returned when Kintone answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kintone: API error (%d): %s", e.StatusCode, e.Body)
}
