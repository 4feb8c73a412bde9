package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Default client settings. The timeout is deliberately short: this tool
// performs a single one-shot request and should fail fast rather than
// retry or hang.
const (
	// DefaultTimeout bounds the whole request, including body download.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the tool in HTTP requests. A descriptive
	// User-Agent lets site operators recognize the traffic in their logs.
	DefaultUserAgent = "webfreq/1.0 (+https://github.com/nao1215/webfreq)"

	// DefaultMaxBodySize limits the response body to read. 5MB covers
	// HTML documents comfortably while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Client fetches web pages.
//
// Design decision: We wrap http.Client in our own type rather than passing
// an http.Client around because the fetcher also owns request decoration
// (User-Agent, cookie, extra headers), body limiting, and charset decoding.
// Keeping those in one place means the pipeline only sees UTF-8 text.
type Client struct {
	// httpClient performs the requests. Its Timeout is the overall
	// per-request bound.
	httpClient *http.Client

	// userAgent is sent as the User-Agent header.
	userAgent string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64

	// cookie, if set, is sent verbatim as the Cookie header. Used for
	// pages behind session authentication.
	cookie string

	// headers are extra request headers applied after the defaults.
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithCookie sets a Cookie header value, e.g. "session=abc123".
func WithCookie(cookie string) Option {
	return func(c *Client) {
		c.cookie = cookie
	}
}

// WithHeaders sets extra request headers. They are applied after the
// default headers and may override them.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// New creates a Client with default settings.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result holds the outcome of a successful fetch.
type Result struct {
	// URL is the requested URL as given by the caller.
	URL string

	// StatusCode is the HTTP response status code.
	StatusCode int

	// ContentType is the media type from the Content-Type header,
	// without parameters.
	ContentType string

	// Header contains the full response headers.
	Header http.Header

	// Body is the response body decoded to UTF-8.
	Body string
}

// Fetch downloads the page at rawURL and returns its body as UTF-8 text.
//
// The URL must be absolute with an http or https scheme; anything else
// fails with ErrInvalidURL before any network activity. Responses with a
// status of 400 or above fail with ErrHTTPStatus. The body is truncated
// at the configured maximum size and decoded from the charset declared in
// the Content-Type header.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close errors are not actionable

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s returned %d %s",
			ErrHTTPStatus, rawURL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, charset := splitContentType(contentType)

	return &Result{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: mediaType,
		Header:      resp.Header.Clone(),
		Body:        decodeBody(body, charset),
	}, nil
}

// splitContentType extracts the media type and charset parameter from a
// Content-Type header value. Returns empty strings for absent parts.
func splitContentType(contentType string) (mediaType, charset string) {
	if contentType == "" {
		return "", ""
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType, ""
	}
	return mediaType, params["charset"]
}

// decodeBody converts body to UTF-8 according to the declared charset.
// Unknown or missing charsets fall back to interpreting the bytes as-is:
// a wrong guess would corrupt more than it fixes, and UTF-8 dominates the
// modern web.
func decodeBody(body []byte, charset string) string {
	if charset == "" || strings.EqualFold(charset, "utf-8") {
		return string(body)
	}

	enc, err := htmlindex.Get(charset)
	if err != nil || enc == nil {
		return string(body)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
