package wordpress

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PageSize is the fixed number of posts requested per listing.
const PageSize = 10

// AvatarSize is the avatar pixel size attached to enriched posts.
const AvatarSize = 48

const (
	postsPath         = "/wp-json/wp/v2/posts"
	defaultUserAgent  = "wpfeed/0.1"
	defaultTimeout    = 10 * time.Second
	maxErrorBodyBytes = 64 << 10
)

// APIError is returned when WordPress answers with a 4xx/5xx status.
type APIError struct {
	Path    string
	Status  int
	Code    string
	Message string
	Body    string // trimmed raw response body, kept when it carries no message
}

// Detail returns the most specific server-provided text: the WordPress
// message when present, otherwise the raw body.
func (e *APIError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Body
}

func (e *APIError) Error() string {
	if detail := e.Detail(); detail != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, detail)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// Client talks to the WordPress REST API of a single site.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithInsecureTLS disables certificate validation for the site and author hosts.
func WithInsecureTLS(insecure bool) Option {
	return func(c *Client) {
		if !insecure {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		c.http.Transport = transport
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the site at siteURL.
func NewClient(siteURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(siteURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the normalised site origin.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListPosts fetches the first page of posts with embedded relations.
func (c *Client) ListPosts(ctx context.Context, perPage int) ([]Post, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if perPage <= 0 {
		perPage = PageSize
	}
	values := url.Values{}
	values.Set("per_page", strconv.Itoa(perPage))
	// _embed is a bare flag; url.Values would render it as "_embed=".
	rel := &url.URL{Path: postsPath, RawQuery: values.Encode() + "&_embed"}

	var posts []Post
	if err := c.get(ctx, rel, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchAuthor resolves an author relation link. Relative hrefs are resolved
// against the site URL.
func (c *Client) FetchAuthor(ctx context.Context, href string) (Author, error) {
	if c == nil {
		return Author{}, fmt.Errorf("client is nil")
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return Author{}, fmt.Errorf("author href is empty")
	}
	rel, err := url.Parse(href)
	if err != nil {
		return Author{}, fmt.Errorf("parse author href %q: %w", href, err)
	}
	var author Author
	if err := c.get(ctx, rel, &author); err != nil {
		return Author{}, err
	}
	return author, nil
}

func (c *Client) get(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return newAPIError(reqURL.Path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(path string, resp *http.Response) *APIError {
	apiErr := &APIError{Path: path, Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = strings.TrimSpace(body.Code)
		apiErr.Message = strings.TrimSpace(body.Message)
	}
	if apiErr.Message == "" {
		apiErr.Body = strings.TrimSpace(string(raw))
	}
	return apiErr
}

func parseBaseURL(siteURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(siteURL)
	if trimmed == "" {
		return nil, fmt.Errorf("site url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse site url %q: %w", siteURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse site url %q: missing host", siteURL)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
