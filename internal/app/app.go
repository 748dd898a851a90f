package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/wpfeed/internal/config"
	"github.com/five82/wpfeed/internal/prefs"
	"github.com/five82/wpfeed/internal/ui"
	"github.com/five82/wpfeed/internal/wordpress"
)

// Version is stamped at build time with -ldflags "-X github.com/five82/wpfeed/internal/app.Version=...".
var Version = "dev"

// Options configure the wpfeed application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/wpfeed/prefs.toml
}

// Run boots the wpfeed TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	restoreLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer restoreLog()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	log.Printf("wpfeed starting: site=%s theme=%s", client.BaseURL(), userPrefs.Theme)

	return ui.Run(ui.Options{
		Context:   ctx,
		Source:    client,
		Config:    &cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	})
}

func newClient(cfg config.Config) (*wordpress.Client, error) {
	client, err := wordpress.NewClient(cfg.SiteURL,
		wordpress.WithTimeout(cfg.RequestTimeout),
		wordpress.WithInsecureTLS(cfg.InsecureSkipVerify),
		wordpress.WithUserAgent(userAgent()),
	)
	if err != nil {
		return nil, fmt.Errorf("init wordpress client: %w", err)
	}
	return client, nil
}

func userAgent() string {
	return "wpfeed/" + Version
}

// setupLogging sends the standard logger to path, or discards it when path
// is empty, since the terminal belongs to the UI. The returned func puts
// stderr back.
func setupLogging(path string) (func(), error) {
	restore := func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "wpfeed")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() {
		restore()
		_ = f.Close()
	}, nil
}
