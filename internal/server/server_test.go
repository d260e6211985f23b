package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/recruit-dash/internal/auth"
	"github.com/honeycarbs/recruit-dash/internal/domain"
	"github.com/honeycarbs/recruit-dash/pkg/kintone"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

type fakeApplicants struct {
	snapshot domain.ApplicantSnapshot
	err      error
}

func (f fakeApplicants) List(context.Context) (domain.ApplicantSnapshot, error) {
	return f.snapshot, f.err
}

func newTestServer(t *testing.T, applicants ApplicantService) *Server {
	t.Helper()
	return newTestServerWithMCP(t, applicants, nil)
}

func newTestServerWithMCP(t *testing.T, applicants ApplicantService, mcpHandler http.Handler) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := auth.NewIssuer("test-secret", auth.WithTTL(time.Hour))
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	authSvc := auth.NewService(auth.StaticCredentials{"admin": "s3cret"}, issuer, logging.Nop())

	return New(Config{Host: "127.0.0.1", Port: "0"}, logging.Nop(), applicants, authSvc, mcpHandler)
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, fakeApplicants{})
	rec, _ := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestFetchApplicants(t *testing.T) {
	s := newTestServer(t, fakeApplicants{snapshot: domain.ApplicantSnapshot{
		Applicants: []domain.Applicant{{FullName: "Ann Lee", Status: "Hired"}},
	}})

	rec, _ := do(t, s, http.MethodGet, "/api/applicants", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []domain.Applicant
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Ann Lee" {
		t.Fatalf("unexpected applicants: %+v", got)
	}
}

func TestFetchApplicantsUpstreamError(t *testing.T) {
	upstream := &kintone.APIError{StatusCode: http.StatusForbidden, Body: "no access"}
	s := newTestServer(t, fakeApplicants{err: upstream})

	rec, body := do(t, s, http.MethodGet, "/api/applicants", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected upstream status 403, got %d", rec.Code)
	}
	if body["error"] != "Kintone API error" || body["details"] != "no access" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestFetchApplicantsFailure(t *testing.T) {
	s := newTestServer(t, fakeApplicants{err: errors.New("dial tcp: refused")})

	rec, body := do(t, s, http.MethodGet, "/api/applicants", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "dial tcp: refused" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestLogin(t *testing.T) {
	cases := []struct {
		name    string
		method  string
		body    string
		status  int
		message string
	}{
		{"success", http.MethodPost, `{"userId":"admin","password":" s3cret "}`, http.StatusOK, "Login successful"},
		{"wrong password", http.MethodPost, `{"userId":"admin","password":"nope"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown user", http.MethodPost, `{"userId":"ghost","password":"s3cret"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"missing password", http.MethodPost, `{"userId":"admin"}`, http.StatusBadRequest, "Missing username or password"},
		{"empty user id", http.MethodPost, `{"userId":"","password":"x"}`, http.StatusBadRequest, "Missing username or password"},
		{"malformed body", http.MethodPost, `{"userId":`, http.StatusInternalServerError, "Internal server error"},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "Method Not Allowed"},
	}

	s := newTestServer(t, fakeApplicants{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, s, tc.method, "/api/login", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
			if tc.status == http.StatusOK {
				if body["success"] != true || body["user"] != "admin" || body["token"] == "" {
					t.Fatalf("unexpected success body: %v", body)
				}
			} else if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body)
			}
		})
	}
}

func TestLoginPreflight(t *testing.T) {
	s := newTestServer(t, fakeApplicants{})

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestVerifyAuth(t *testing.T) {
	s := newTestServer(t, fakeApplicants{})

	_, login := do(t, s, http.MethodPost, "/api/login", `{"userId":"admin","password":"s3cret"}`)
	token, _ := login["token"].(string)
	if token == "" {
		t.Fatalf("login did not return a token: %v", login)
	}

	rec, body := do(t, s, http.MethodPost, "/api/verify-auth", `{"token":"`+token+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["success"] != true || body["user"] != "admin" {
		t.Fatalf("unexpected body: %v", body)
	}
	if lt, ok := body["loginTime"].(float64); !ok || lt <= 0 {
		t.Fatalf("expected loginTime, got %v", body["loginTime"])
	}
}

func TestVerifyAuthRejects(t *testing.T) {
	cases := []struct {
		name    string
		method  string
		body    string
		status  int
		message string
	}{
		{"no token", http.MethodPost, `{}`, http.StatusUnauthorized, "No token provided"},
		{"garbage token", http.MethodPost, `{"token":"abc.def.ghi"}`, http.StatusUnauthorized, "Invalid token"},
		{"malformed body", http.MethodPost, `not json`, http.StatusInternalServerError, "Internal server error"},
		{"wrong method", http.MethodPut, `{}`, http.StatusMethodNotAllowed, "Method Not Allowed"},
	}

	s := newTestServer(t, fakeApplicants{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, s, tc.method, "/api/verify-auth", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if body["message"] != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, body["message"])
			}
		})
	}
}

func TestVerifyAuthExpired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	past := time.Now().Add(-48 * time.Hour)
	issuer, err := auth.NewIssuer("test-secret", auth.WithIssuerClock(func() time.Time { return past }))
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	token, _, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	verifier, _ := auth.NewIssuer("test-secret")
	s := New(Config{}, logging.Nop(), fakeApplicants{}, auth.NewService(auth.StaticCredentials{}, verifier, logging.Nop()), nil)

	rec, body := do(t, s, http.MethodPost, "/api/verify-auth", `{"token":"`+token+`"}`)
	if rec.Code != http.StatusUnauthorized || body["message"] != "Token expired" {
		t.Fatalf("expected expired token rejection, got %d %v", rec.Code, body)
	}
}

func TestMCPStreamRequiresBearerToken(t *testing.T) {
	var reached int
	stream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached++
		_, _ = w.Write([]byte("stream"))
	})
	s := newTestServerWithMCP(t, fakeApplicants{}, stream)

	_, login := do(t, s, http.MethodPost, "/api/login", `{"userId":"admin","password":"s3cret"}`)
	token, _ := login["token"].(string)
	if token == "" {
		t.Fatalf("login did not return a token: %v", login)
	}

	cases := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"no header", "", http.StatusUnauthorized, "No token provided"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "Invalid token"},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, "Invalid token"},
		{"valid token", "Bearer " + token, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := reached
			req := httptest.NewRequest(http.MethodPost, "/mcp/stream", strings.NewReader(`{}`))
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
			if tc.status != http.StatusOK {
				if reached != before {
					t.Fatal("stream handler reached without a valid token")
				}
				var body map[string]any
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body["message"] != tc.message {
					t.Fatalf("expected %q, got %v", tc.message, body["message"])
				}
				return
			}
			if reached != before+1 || rec.Body.String() != "stream" {
				t.Fatalf("expected the stream handler to serve the request, got %q", rec.Body.String())
			}
		})
	}
}
