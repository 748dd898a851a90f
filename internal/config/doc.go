// Package config loads wpfeed's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wpfeed/config.toml
//  3. If the file doesn't exist, return Default()
//  4. If the file exists but a value is missing or blank, keep the default
//
// # TOML Format
//
//	site_url = "https://fernandafamiliar.soy"   # or the proxy, e.g. "http://127.0.0.1:5173"
//	title = "Últimos posts de Fernanda Familiar"
//	request_timeout = "10s"
//	insecure_skip_verify = false
//	log_file = "~/.local/state/wpfeed/wpfeed.log"
//
//	[proxy]
//	listen = "127.0.0.1:5173"
//	target = "https://fernandafamiliar.soy"
//	path_prefix = "/wp-json"
//	change_origin = true
//	secure = false
//
// Booleans are only overridden when present in the file, so an absent
// change_origin keeps its default of true. request_timeout must be a
// positive Go duration; anything else fails Load with a "parse config"
// error. log_file gets tilde expansion.
//
// # Proxy Defaults
//
// The proxy section mirrors the development server the site front-end was
// built against: requests under /wp-json go to the WordPress origin with the
// Host header rewritten (change_origin) and upstream certificate checks off
// (secure = false).
//
// # Error Handling
//
// Missing config files are NOT an error. Load returns errors for unreadable
// files, invalid TOML, and invalid durations.
package config
