// Package wordpress is a small client for the WordPress REST API.
//
// # Overview
//
// wpfeed only needs two endpoints:
//
//   - GET /wp-json/wp/v2/posts?per_page=10&_embed lists the newest posts
//   - GET <_links.author[0].href> resolves a post's author
//
// The client mirrors those payloads in Post and Author. Post also carries the
// local fields the rest of the program attaches (AuthorName, AuthorAvatar,
// Read); the client never sets them.
//
// # Site URL
//
// NewClient accepts a bare host ("example.com"), a host:port, or a full
// origin. A missing scheme defaults to https. Any path, query, or fragment is
// dropped so the API paths always resolve from the site root. Author hrefs
// are resolved against the same base, which leaves absolute hrefs untouched.
//
// # Errors
//
// A status of 400 or above becomes an *APIError. WordPress answers failures
// with a JSON body like
//
//	{"code":"rest_post_invalid_page_number","message":"...","data":{"status":400}}
//
// and when that body parses its code and message are kept on the error so
// callers can show the server's own wording. Transport failures are wrapped
// as "execute request: ..." and malformed JSON as "decode response: ...".
//
// # Usage Example
//
//	client, err := wordpress.NewClient("https://example.com", wordpress.WithTimeout(5*time.Second))
//	if err != nil {
//		return err
//	}
//	posts, err := client.ListPosts(ctx, wordpress.PageSize)
//	if err != nil {
//		return err
//	}
//	href, err := posts[0].AuthorHref()
//	if err != nil {
//		return err
//	}
//	author, err := client.FetchAuthor(ctx, href)
package wordpress
