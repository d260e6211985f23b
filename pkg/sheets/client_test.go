package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestReplaceTabClearsThenWrites(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	var written struct {
		Values [][]any `json:"values"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &written)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), Config{Endpoint: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	n, err := client.ReplaceTab(context.Background(), "sheet-id", "Report", [][]interface{}{
		{"Full Name", "Position"},
		{"Jane", "Engineer"},
	})
	if err != nil {
		t.Fatalf("ReplaceTab: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows written, got %d", n)
	}

	if len(calls) != 2 {
		t.Fatalf("expected clear and update calls, got %v", calls)
	}
	if !strings.HasPrefix(calls[0], "POST ") || !strings.HasSuffix(calls[0], ":clear") {
		t.Fatalf("expected clear first, got %q", calls[0])
	}
	if !strings.HasPrefix(calls[1], "PUT ") {
		t.Fatalf("expected update second, got %q", calls[1])
	}
	if len(written.Values) != 2 || written.Values[1][0] != "Jane" {
		t.Fatalf("unexpected written values %v", written.Values)
	}
}

func TestReplaceTabRequiresSpreadsheetID(t *testing.T) {
	client := &Client{}
	if _, err := client.ReplaceTab(context.Background(), "", "", nil); err == nil {
		t.Fatal("expected error for empty spreadsheet id")
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Fatal("expected error without credentials")
	}
}
