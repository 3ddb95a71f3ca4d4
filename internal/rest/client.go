package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/ramadhanarif/storefront-client/pkg/config"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
)

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token() string
}

// Invalidator is told whenever any endpoint answers 401, so the whole app
// can treat the user as logged out.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Client is the storefront's only way to reach the backend: one base URL,
// one timeout, bearer auth on every call, and a single place where HTTP
// failures become typed domain errors.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	tokens       TokenSource
	unauthorized Invalidator
	logg         *logger.Logger
}

func NewClient(cfg config.APIConfig, logg *logger.Logger, tokens TokenSource, unauthorized Invalidator) (*Client, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source required")
	}
	if unauthorized == nil {
		return nil, fmt.Errorf("unauthorized sink required")
	}

	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http(s), got %q", cfg.BaseURL)
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		tokens:       tokens,
		unauthorized: unauthorized,
		logg:         logg,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ResolveURL turns a backend-relative asset path into an absolute URL.
// Absolute inputs pass through untouched.
func (c *Client) ResolveURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL.String() + path
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logCtx := c.logg.WithFields(ctx, map[string]any{"method": method, "path": path})
	c.logg.Debug(logCtx, "api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(err, method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized.Invalidate(ctx)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode response body")
	}
	return nil
}

func (c *Client) transportError(err error, method, path string) error {
	msg := fmt.Sprintf("%s %s failed", method, path)

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return pkgerrors.Wrap(pkgerrors.CodeTimeout, err, msg)
	}
	if errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, msg)
}

func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	message := ""
	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err == nil {
		message = strings.TrimSpace(parsed.Message)
	}

	code := codeForStatus(resp.StatusCode)
	if message == "" {
		message = pkgerrors.MetadataFor(code).PublicMessage
	}
	return pkgerrors.New(code, message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	default:
		// Remaining 4xx are business-rule refusals; 5xx surface the server
		// message too, recovery is refetch-and-inform either way.
		return pkgerrors.CodeRejected
	}
}
