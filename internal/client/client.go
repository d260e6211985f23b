package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/honeycarbs/recruit-dash/internal/domain"
	"github.com/honeycarbs/recruit-dash/internal/session"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

const (
	applicantsPath = "/api/applicants"
	loginPath      = "/api/login"
	verifyPath     = "/api/verify-auth"

	defaultTimeout = 30 * time.Second
)

var ErrMalformedPayload = errors.New("client: applicants payload is not an array")

// StatusError is a non-2xx response from the functions server
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: HTTP %d: %s", e.StatusCode, e.Body)
}

// Client calls the functions server
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
	logger  *logging.Logger
}

type Option func(*Client)

// WithTimeout bounds requests whose context carries no deadline
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("client: base url is required")
	}

	c := &Client{
		baseURL: baseURL,
		http: &fasthttp.Client{
			Name:                "recruit-dash",
			MaxIdleConnDuration: time.Minute,
		},
		timeout: defaultTimeout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchApplicants returns the full normalized applicant set
func (c *Client) FetchApplicants(ctx context.Context) ([]domain.Applicant, error) {
	status, body, err := c.do(ctx, fasthttp.MethodGet, applicantsPath, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{StatusCode: status, Body: string(body)}
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedPayload
	}

	var out []domain.Applicant
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if out == nil {
		out = []domain.Applicant{}
	}

	c.logger.Debug("applicants fetched", "count", len(out))
	return out, nil
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Login posts credentials. Rejections come back as a result with Success
// false; only transport or decoding problems are errors.
func (c *Client) Login(ctx context.Context, userID, password string) (session.LoginResult, error) {
	var res session.LoginResult
	if err := c.postJSON(ctx, loginPath, loginRequest{UserID: userID, Password: password}, &res); err != nil {
		return session.LoginResult{}, err
	}
	return res, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

// Verify asks the server whether token is still valid
func (c *Client) Verify(ctx context.Context, token string) (session.Verification, error) {
	var res session.Verification
	if err := c.postJSON(ctx, verifyPath, verifyRequest{Token: token}, &res); err != nil {
		return session.Verification{}, err
	}
	return res, nil
}

// postJSON decodes the body whatever the status, since the auth functions
// answer failures with a JSON envelope too
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("client: encode %s: %w", path, err)
	}

	status, body, err := c.do(ctx, fasthttp.MethodPost, path, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &StatusError{StatusCode: status, Body: string(body)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "err", err)
		return 0, nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}

	out := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), out, nil
}
