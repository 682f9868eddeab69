// Package request sends small JSON requests to HTTP services and unwraps
// the "result" field of their replies.
package request

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/net/proxy"
)

// DefaultTimeout bounds a request when Request.Timeout is zero.
const DefaultTimeout = 2 * time.Second

// Method is an HTTP method accepted by Do.
type Method string

const (
	GET    Method = http.MethodGet
	POST   Method = http.MethodPost
	PUT    Method = http.MethodPut
	DELETE Method = http.MethodDelete
)

// ErrUnsupportedMethod is returned for methods other than GET, POST, PUT and DELETE.
var ErrUnsupportedMethod = errors.New("unsupported request method")

// Request describes one call. Zero values take the documented defaults.
type Request struct {
	Host string
	Port int
	Path string

	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration

	// Protocol defaults to "http".
	Protocol string

	Headers map[string]string

	// Params are sent as the query string for GET and as a JSON body
	// otherwise.
	Params map[string]any

	// Method defaults to GET.
	Method Method
}

// Response is the outcome of a call. Result is only meaningful when Success
// is true; Message explains a failure.
type Response struct {
	Result  any
	Success bool
	Message string
}

// Client sends requests. The zero value is not usable; use NewClient.
type Client struct {
	httpClient *http.Client
	proxyURL   string
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. It takes precedence over WithProxy.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithProxy routes requests through an http, https or socks5 proxy.
func WithProxy(proxyURL string) Option {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithUserAgent sets the User-Agent header for every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new client.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport, err := newTransport(c.proxyURL)
		if err != nil {
			return nil, err
		}
		c.httpClient = &http.Client{Transport: transport}
	}

	return c, nil
}

// newTransport builds a transport with optional proxy support.
func newTransport(proxyURL string) (*http.Transport, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: false,
		},
	}

	if proxyURL == "" {
		return transport, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			password, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}

	return transport, nil
}

var defaultClient, _ = NewClient()

// Do sends req with the default client.
func Do(ctx context.Context, req *Request) (*Response, error) {
	return defaultClient.Do(ctx, req)
}

// Do sends req and unwraps the reply. Transport failures, timeouts, non-200
// statuses and replies without a "result" field produce a Response with
// Success false. An error is returned only when the request cannot be built.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, cancel, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.failed(httpReq, fmt.Errorf("request failed: %w", err)), nil
	}

	result, err := parseResponse(resp)
	if err != nil {
		return c.failed(httpReq, err), nil
	}

	return &Response{Result: result, Success: true}, nil
}

func (c *Client) failed(req *http.Request, err error) *Response {
	c.logger.Debug("request failed", "method", req.Method, "url", req.URL.String(), "error", err)
	return &Response{Message: err.Error()}
}

// newHTTPRequest builds the HTTP request bounded by the request timeout.
func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, context.CancelFunc, error) {
	method := req.Method
	if method == "" {
		method = GET
	}
	switch method {
	case GET, POST, PUT, DELETE:
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	target := BuildURL(req)

	var bodyReader io.Reader
	if method == GET {
		if len(req.Params) > 0 {
			target += "?" + queryValues(req.Params).Encode()
		}
	} else if req.Params != nil {
		data, err := json.Marshal(req.Params)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	httpReq, err := http.NewRequestWithContext(ctx, string(method), target, bodyReader)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if bodyReader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, cancel, nil
}

// BuildURL returns {protocol}://{host}:{port}/{path} for req.
func BuildURL(req *Request) string {
	protocol := req.Protocol
	if protocol == "" {
		protocol = "http"
	}
	host := net.JoinHostPort(req.Host, strconv.Itoa(req.Port))
	return protocol + "://" + host + "/" + strings.TrimPrefix(req.Path, "/")
}

// queryValues encodes params, expanding slices into repeated keys.
func queryValues(params map[string]any) url.Values {
	q := url.Values{}
	for k, v := range params {
		switch vv := v.(type) {
		case nil:
		case []string:
			for _, s := range vv {
				q.Add(k, s)
			}
		case []any:
			for _, s := range vv {
				q.Add(k, fmt.Sprint(s))
			}
		default:
			q.Add(k, fmt.Sprint(vv))
		}
	}
	return q
}

// parseResponse returns the "result" field of a 200 reply.
func parseResponse(resp *http.Response) (any, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	result, ok := payload["result"]
	if !ok {
		return nil, errors.New("response has no result field")
	}
	return result, nil
}
