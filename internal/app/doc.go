// Package app is the composition root for the wpfeed and wpproxy binaries.
//
// # Overview
//
// Each entry point loads configuration and builds its dependencies, then
// hands off to the package that does the work:
//
//   - Run: the interactive feed (ui.Run)
//   - Dump: one headless fetch cycle encoded as JSON or YAML
//   - RunProxy: the development reverse proxy (proxy.Server)
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read ~/.config/wpfeed/config.toml
//	       ├─────> setupLogging()        log -> log_file (tea.LogToFile) or discard
//	       ├─────> prefs.Load()          Theme and excerpt preferences
//	       ├─────> wordpress.NewClient() REST client with timeout / TLS options
//	       └─────> ui.Run()              TUI; fetches once on start (blocks)
//
//	┌──────────────┐
//	│   Dump()     │
//	└──────┬───────┘
//	       ├─────> state.NewStore()
//	       ├─────> feed.Run()            FetchStart, then FetchSuccess | FetchError
//	       └─────> encode()              json (encoding/json) or yaml (yaml.v3)
//
// # Logging
//
// The standard logger is the only logger. While the TUI owns the terminal its
// output goes to log_file, or nowhere when log_file is unset; the UI's log
// view (L) reads that file back. The proxy logs to stderr with a "wpproxy"
// prefix.
//
// # Error Handling
//
// Startup errors (bad config, bad site URL, unwritable log file) are returned
// wrapped and printed by main as "wpfeed: <err>". Fetch failures are not
// errors for Run; the UI shows them. Dump returns them, since it has no
// other way to report one.
package app
