package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures wpfeed and wpproxy settings.
type Config struct {
	SiteURL            string
	Title              string
	RequestTimeout     time.Duration
	InsecureSkipVerify bool
	LogFile            string
	Proxy              ProxyConfig
}

// ProxyConfig configures the development reverse proxy.
type ProxyConfig struct {
	Listen       string
	Target       string
	PathPrefix   string
	ChangeOrigin bool
	Secure       bool
}

const (
	defaultConfigPath     = "~/.config/wpfeed/config.toml"
	defaultSiteURL        = "https://fernandafamiliar.soy"
	defaultTitle          = "Últimos posts de Fernanda Familiar"
	defaultRequestTimeout = 10 * time.Second
	defaultProxyListen    = "127.0.0.1:5173"
	defaultProxyPrefix    = "/wp-json"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SiteURL:        defaultSiteURL,
		Title:          defaultTitle,
		RequestTimeout: defaultRequestTimeout,
		Proxy: ProxyConfig{
			Listen:       defaultProxyListen,
			Target:       defaultSiteURL,
			PathPrefix:   defaultProxyPrefix,
			ChangeOrigin: true,
			Secure:       false,
		},
	}
}

type rawConfig struct {
	SiteURL            string `toml:"site_url"`
	Title              string `toml:"title"`
	RequestTimeout     string `toml:"request_timeout"`
	InsecureSkipVerify *bool  `toml:"insecure_skip_verify"`
	LogFile            string `toml:"log_file"`
	Proxy              struct {
		Listen       string `toml:"listen"`
		Target       string `toml:"target"`
		PathPrefix   string `toml:"path_prefix"`
		ChangeOrigin *bool  `toml:"change_origin"`
		Secure       *bool  `toml:"secure"`
	} `toml:"proxy"`
}

// Load reads the config at path (default ~/.config/wpfeed/config.toml),
// falling back to defaults when the file is missing or a value is blank.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.SiteURL); v != "" {
		cfg.SiteURL = v
	}
	if v := strings.TrimSpace(raw.Title); v != "" {
		cfg.Title = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("parse config: request_timeout %q is not a positive duration", v)
		}
		cfg.RequestTimeout = d
	}
	if raw.InsecureSkipVerify != nil {
		cfg.InsecureSkipVerify = *raw.InsecureSkipVerify
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	if v := strings.TrimSpace(raw.Proxy.Listen); v != "" {
		cfg.Proxy.Listen = v
	}
	if v := strings.TrimSpace(raw.Proxy.Target); v != "" {
		cfg.Proxy.Target = v
	}
	if v := strings.TrimSpace(raw.Proxy.PathPrefix); v != "" {
		cfg.Proxy.PathPrefix = "/" + strings.Trim(v, "/")
	}
	if raw.Proxy.ChangeOrigin != nil {
		cfg.Proxy.ChangeOrigin = *raw.Proxy.ChangeOrigin
	}
	if raw.Proxy.Secure != nil {
		cfg.Proxy.Secure = *raw.Proxy.Secure
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
