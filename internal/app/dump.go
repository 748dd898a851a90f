package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/wpfeed/internal/config"
	"github.com/five82/wpfeed/internal/feed"
	"github.com/five82/wpfeed/internal/state"
	"github.com/five82/wpfeed/internal/wordpress"
)

// Dump formats accepted by Dump.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Dump runs one fetch cycle without the UI and writes the enriched posts to
// w. A failed cycle is returned as an error carrying the same message the UI
// would show.
func Dump(ctx context.Context, opts Options, w io.Writer, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("unsupported dump format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	restoreLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer restoreLog()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	snap := load(ctx, client)
	if snap.Error != "" {
		return fmt.Errorf("fetch posts: %s", snap.Error)
	}
	return encode(w, format, snap.Posts)
}

// load runs a fetch cycle through a Store and returns the settled state.
func load(ctx context.Context, src feed.Source) state.State {
	store := state.NewStore()
	feed.Run(ctx, src, store.Dispatch)
	return store.Snapshot()
}

func encode(w io.Writer, format string, posts []wordpress.Post) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(posts); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(posts); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
