package kintone

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchRecordsSendsTokenAndQuery(t *testing.T) {
	var gotToken, gotApp, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/k/v1/records.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotToken = r.Header.Get("X-Cybozu-API-Token")
		gotApp = r.URL.Query().Get("app")
		gotQuery = r.URL.Query().Get("query")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[
			{"Full_Name":{"type":"SINGLE_LINE_TEXT","value":"Jane Doe"},"Position":{"type":"DROP_DOWN","value":"Engineer"}},
			{"Full_Name":{"type":"SINGLE_LINE_TEXT","value":"John Roe"},"Tags":{"type":"CHECK_BOX","value":["a","b"]}}
		]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "42", APIToken: "secret", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	records, err := client.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}

	if gotToken != "secret" {
		t.Fatalf("expected api token header, got %q", gotToken)
	}
	if gotApp != "42" {
		t.Fatalf("expected app=42, got %q", gotApp)
	}
	if !strings.HasPrefix(gotQuery, "order by Record_number desc") {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].String("Full_Name") != "Jane Doe" {
		t.Fatalf("unexpected name %q", records[0].String("Full_Name"))
	}
	if records[1].String("Position") != "" {
		t.Fatalf("missing field should be empty, got %q", records[1].String("Position"))
	}
	if records[1].String("Tags") != "" {
		t.Fatalf("non-string field should be empty, got %q", records[1].String("Tags"))
	}
}

func TestFetchRecordsPages(t *testing.T) {
	total := 7
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		offsets = append(offsets, q[strings.LastIndex(q, " ")+1:])

		var limit, offset int
		_, _ = fmt.Sscanf(q, "order by Record_number desc limit %d offset %d", &limit, &offset)

		var parts []string
		for i := offset; i < offset+limit && i < total; i++ {
			parts = append(parts, fmt.Sprintf(`{"Full_Name":{"type":"SINGLE_LINE_TEXT","value":"n%d"}}`, i))
		}
		_, _ = w.Write([]byte(`{"records":[` + strings.Join(parts, ",") + `]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "1", APIToken: "t", BaseURL: srv.URL, PageSize: 3, MaxRecords: 100})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	records, err := client.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != total {
		t.Fatalf("expected %d records, got %d", total, len(records))
	}
	if got := strings.Join(offsets, ","); got != "0,3,6" {
		t.Fatalf("unexpected offsets %s", got)
	}
	if records[6].String("Full_Name") != "n6" {
		t.Fatalf("order not preserved: %q", records[6].String("Full_Name"))
	}
}

func TestFetchRecordsStopsAtMaxRecords(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"records":[{},{}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "1", APIToken: "t", BaseURL: srv.URL, PageSize: 2, MaxRecords: 4})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	records, err := client.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 4 || calls != 2 {
		t.Fatalf("expected 4 records in 2 calls, got %d in %d", len(records), calls)
	}
}

func TestFetchRecordsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"GAIA_NO01","message":"Using this API token, you cannot run the specified API."}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "1", APIToken: "t", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.FetchRecords(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "GAIA_NO01") {
		t.Fatalf("expected upstream body, got %q", apiErr.Body)
	}
}

func TestNewClientValidation(t *testing.T) {
	cases := []Config{
		{APIToken: "t", Domain: "x.cybozu.com"},
		{AppID: "1", Domain: "x.cybozu.com"},
		{AppID: "1", APIToken: "t"},
	}
	for i, cfg := range cases {
		if _, err := NewClient(cfg); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}
