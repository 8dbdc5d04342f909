package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/metrics"
	"github.com/kadualabs/vendorhub/pkg/types"
)

const responseBodyReadLimit int64 = 1 << 20

var errBaseURLRequired = errors.New("api base url is required")

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to the TokenSource interface.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client wraps the vendor API with auth injection, envelope decoding, and
// uniform error mapping. It performs no automatic retries.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	onUnauthorized func(context.Context)
	logg           *logger.Logger
	metrics        *metrics.RequestMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout adjusts the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 && c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTokenSource installs the bearer token provider.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		c.tokens = source
	}
}

// WithOnUnauthorized registers the hook fired whenever the server answers 401,
// so the application root can tear the local session down.
func WithOnUnauthorized(hook func(context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// WithLogger attaches the structured logger.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics attaches request metrics.
func WithMetrics(m *metrics.RequestMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return client, nil
}

// GetJSON issues a GET and decodes the response envelope.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (*types.Envelope, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

// PostJSON issues a POST with a JSON body. A nil body sends no payload.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*types.Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

// PatchJSON issues a PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, path string, body any) (*types.Envelope, error) {
	return c.doJSON(ctx, http.MethodPatch, path, body)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body any) (*types.Envelope, error) {
	return c.doJSON(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*types.Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// PostForm issues a POST with a multipart form body.
func (c *Client) PostForm(ctx context.Context, path string, form *Form) (*types.Envelope, error) {
	return c.doForm(ctx, http.MethodPost, path, form)
}

// PatchForm issues a PATCH with a multipart form body.
func (c *Client) PatchForm(ctx context.Context, path string, form *Form) (*types.Envelope, error) {
	return c.doForm(ctx, http.MethodPatch, path, form)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*types.Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}
	return c.do(ctx, method, path, nil, reader, "application/json")
}

func (c *Client) doForm(ctx context.Context, method, path string, form *Form) (*types.Envelope, error) {
	if form == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "multipart form is required")
	}
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "encode multipart body")
	}
	return c.do(ctx, method, path, nil, body, contentType)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*types.Envelope, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeTransport, "api client not configured")
	}

	target := c.buildURL(path)
	if len(query) > 0 {
		target = target + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "build request")
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.Token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resource := resourceLabel(path)
	reqCtx := ctx
	if c.logg != nil {
		reqCtx = c.logg.WithRequestID(ctx, uuid.NewString())
		reqCtx = c.logg.WithResource(reqCtx, resource)
		c.logg.Debug(reqCtx, fmt.Sprintf("%s %s", method, path))
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(resource, method, time.Since(started))
	if err != nil {
		c.metrics.IncFailure(resource, method, string(pkgerrors.CodeTransport))
		if c.logg != nil {
			c.logg.Error(reqCtx, "request failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		c.metrics.IncFailure(resource, method, string(pkgerrors.CodeTransport))
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "read response body")
	}

	envelope := &types.Envelope{}
	decodeErr := json.Unmarshal(raw, envelope)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(reqCtx)
	}

	if restErr := c.classify(resp.StatusCode, envelope, decodeErr); restErr != nil {
		c.metrics.IncFailure(resource, method, string(restErr.Code()))
		if c.logg != nil {
			c.logg.Warn(reqCtx, fmt.Sprintf("%s %s failed: %s", method, path, restErr.Code()))
		}
		return nil, restErr
	}

	c.metrics.IncSuccess(resource, method)
	return envelope, nil
}

// classify maps an HTTP status plus decoded envelope onto the error taxonomy.
// A nil return means the call succeeded at both transport and application level.
func (c *Client) classify(status int, envelope *types.Envelope, decodeErr error) *pkgerrors.Error {
	serverMessage := ""
	if decodeErr == nil {
		serverMessage = envelope.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, serverMessage)
	case status == http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeForbidden, serverMessage)
	case status == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, serverMessage)
	case status >= 500:
		if serverMessage == "" {
			serverMessage = fmt.Sprintf("server returned status %d", status)
		}
		return pkgerrors.New(pkgerrors.CodeTransport, serverMessage)
	case status >= 400:
		return pkgerrors.New(pkgerrors.CodeApplication, serverMessage)
	case decodeErr != nil:
		return pkgerrors.Wrap(pkgerrors.CodeTransport, decodeErr, "decode response envelope")
	case !envelope.Success:
		return pkgerrors.New(pkgerrors.CodeApplication, envelope.Message)
	default:
		return nil
	}
}

func (c *Client) buildURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// resourceLabel collapses a request path to its leading segment so metric
// cardinality stays bounded.
func resourceLabel(path string) string {
	trimmed := strings.TrimLeft(path, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		return trimmed[:idx]
	}
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
