package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/five82/wpfeed/internal/config"
	"github.com/five82/wpfeed/internal/proxy"
)

// ProxyOptions configure the development proxy. Listen and Target override
// the config file when set.
type ProxyOptions struct {
	ConfigPath string
	Listen     string
	Target     string
}

// RunProxy serves the WordPress reverse proxy until ctx is cancelled.
func RunProxy(ctx context.Context, opts ProxyOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if listen := strings.TrimSpace(opts.Listen); listen != "" {
		cfg.Proxy.Listen = listen
	}
	if target := strings.TrimSpace(opts.Target); target != "" {
		cfg.Proxy.Target = target
	}

	logger := log.New(os.Stderr, "wpproxy ", log.LstdFlags)
	srv, err := proxy.New(cfg.Proxy, proxy.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init proxy: %w", err)
	}
	return srv.ListenAndServe(ctx, cfg.Proxy.Listen)
}
