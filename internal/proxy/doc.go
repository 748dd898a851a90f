// Package proxy is the development reverse proxy for the WordPress API.
//
// Requests whose path starts with the configured prefix (default /wp-json)
// are forwarded unchanged to a fixed upstream origin. Two switches match the
// front-end dev server this replaces:
//
//   - ChangeOrigin rewrites the outbound Host header to the upstream host,
//     which name-based virtual hosting on the WordPress side requires
//   - Secure=false skips upstream certificate validation so staging sites
//     with self-signed certificates work
//
// Everything else answers 404 except /healthz. Each request gets an
// X-Request-Id (a caller-supplied one is kept), which is forwarded upstream,
// echoed in the response, and written to the access log. CORS is open so a
// browser front-end on another port can call through the proxy.
//
// Upstream failures surface as 502 with a WordPress-shaped error body, so
// wpfeed shows the proxy's message the same way it shows a site error.
package proxy
