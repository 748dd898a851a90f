package wordpress

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("example.com")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Host != "example.com" {
		t.Fatalf("host = %q, want example.com", u.Host)
	}

	u, err = parseBaseURL("http://example.com:1234/blog/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != "http://example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatalf("parseBaseURL blank returned nil error, want error")
	}
}

func TestClient_ListPostsRequestsFirstEmbeddedPage(t *testing.T) {
	t.Parallel()

	var gotRawQuery, gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/posts" {
			http.NotFound(w, r)
			return
		}
		gotRawQuery = r.URL.RawQuery
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "title": {"rendered": "Hola"}, "excerpt": {"rendered": "<p>uno</p>"},
			 "content": {"rendered": "<p>uno dos</p>"}, "date": "2024-05-01T10:20:30",
			 "modified": "2024-05-02T08:00:00", "link": "https://example.com/hola",
			 "jetpack_featured_media_url": "https://example.com/img.jpg",
			 "_links": {"author": [{"embeddable": true, "href": "https://example.com/wp-json/wp/v2/users/3"}]}}
		]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	posts, err := c.ListPosts(ctx, PageSize)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if gotRawQuery != "per_page=10&_embed" {
		t.Fatalf("query = %q, want per_page=10&_embed", gotRawQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "wpfeed/") {
		t.Fatalf("User-Agent = %q, want wpfeed/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	p := posts[0]
	if p.ID != 7 || p.Title.Rendered != "Hola" || p.FeaturedMediaURL != "https://example.com/img.jpg" {
		t.Fatalf("post = %#v, want id=7 title=Hola with featured media", p)
	}
	if p.Read || p.AuthorName != "" || p.AuthorAvatar != "" {
		t.Fatalf("local fields set by client: %#v", p)
	}
	href, err := p.AuthorHref()
	if err != nil {
		t.Fatalf("AuthorHref returned error: %v", err)
	}
	if href != "https://example.com/wp-json/wp/v2/users/3" {
		t.Fatalf("AuthorHref = %q", href)
	}
}

func TestClient_FetchAuthorResolvesRelativeHref(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/users/3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":3,"name":"Fernanda","avatar_urls":{"24":"a24","48":"a48","96":"a96"}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	author, err := c.FetchAuthor(context.Background(), "/wp-json/wp/v2/users/3")
	if err != nil {
		t.Fatalf("FetchAuthor returned error: %v", err)
	}
	if author.Name != "Fernanda" {
		t.Fatalf("Name = %q, want Fernanda", author.Name)
	}
	if got := author.Avatar(AvatarSize); got != "a48" {
		t.Fatalf("Avatar(48) = %q, want a48", got)
	}
	if got := author.Avatar(512); got != "" {
		t.Fatalf("Avatar(512) = %q, want empty", got)
	}

	// Absolute hrefs are used as-is.
	author, err = c.FetchAuthor(context.Background(), server.URL+"/wp-json/wp/v2/users/3")
	if err != nil {
		t.Fatalf("FetchAuthor absolute returned error: %v", err)
	}
	if author.ID != 3 {
		t.Fatalf("ID = %d, want 3", author.ID)
	}

	if _, err := c.FetchAuthor(context.Background(), "  "); err == nil {
		t.Fatalf("FetchAuthor blank href returned nil error, want error")
	}
}

func TestClient_APIErrorCarriesServerMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wp/v2/posts":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":"internal_error","message":"Internal Error","data":{"status":500}}`))
		case "/wp-json/wp/v2/users/9":
			http.Error(w, "<html>gateway</html>", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListPosts(context.Background(), PageSize)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("ListPosts error = %v, want *APIError", err)
	}
	if apiErr.Status != 500 || apiErr.Code != "internal_error" || apiErr.Message != "Internal Error" {
		t.Fatalf("APIError = %#v, want 500 internal_error Internal Error", apiErr)
	}
	if apiErr.Body != "" {
		t.Fatalf("Body = %q, want empty when the message was parsed", apiErr.Body)
	}

	_, err = c.FetchAuthor(context.Background(), "/wp-json/wp/v2/users/9")
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchAuthor error = %v, want *APIError", err)
	}
	if apiErr.Message != "" {
		t.Fatalf("Message = %q, want empty for non-JSON body", apiErr.Message)
	}
	if apiErr.Body != "<html>gateway</html>" || apiErr.Detail() != apiErr.Body {
		t.Fatalf("Body = %q, Detail = %q, want the trimmed raw body", apiErr.Body, apiErr.Detail())
	}
	if !strings.Contains(err.Error(), "returned status 502: <html>gateway</html>") {
		t.Fatalf("error = %q, want status 502 with body", err.Error())
	}
}

func TestClient_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ListPosts(context.Background(), 0)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListPosts error = %v, want decode response error", err)
	}
}

func TestClient_InsecureTLSReachesSelfSignedSite(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	strict, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := strict.ListPosts(context.Background(), PageSize); err == nil {
		t.Fatalf("ListPosts against self-signed cert returned nil error, want TLS error")
	}

	insecure, err := NewClient(server.URL, WithInsecureTLS(true))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	posts, err := insecure.ListPosts(context.Background(), PageSize)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("posts = %d, want 0", len(posts))
	}
}

func TestPost_AuthorHrefMissing(t *testing.T) {
	if _, err := (Post{ID: 4}).AuthorHref(); err == nil {
		t.Fatalf("AuthorHref without links returned nil error, want error")
	}
	p := Post{ID: 5, Links: Links{Author: []Link{{Href: " "}}}}
	if _, err := p.AuthorHref(); err == nil {
		t.Fatalf("AuthorHref with blank href returned nil error, want error")
	}
}
