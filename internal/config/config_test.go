package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %#v, want %#v", cfg, want)
	}
	if cfg.SiteURL != defaultSiteURL || cfg.Proxy.Target != defaultSiteURL {
		t.Fatalf("SiteURL/Target = %q/%q, want %q", cfg.SiteURL, cfg.Proxy.Target, defaultSiteURL)
	}
	if !cfg.Proxy.ChangeOrigin || cfg.Proxy.Secure {
		t.Fatalf("proxy flags = change_origin:%v secure:%v, want true/false", cfg.Proxy.ChangeOrigin, cfg.Proxy.Secure)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "wpfeed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`site_url = "http://127.0.0.1:5173"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SiteURL != "http://127.0.0.1:5173" {
		t.Fatalf("SiteURL = %q, want proxy address", cfg.SiteURL)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
site_url = "  https://blog.example.com  "
title = "  Mi blog "
request_timeout = "3s"
insecure_skip_verify = true
log_file = "  ~/logs/wpfeed.log "

[proxy]
listen = ":8088"
target = "https://upstream.example.com"
path_prefix = "api/"
change_origin = false
secure = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SiteURL != "https://blog.example.com" {
		t.Fatalf("SiteURL = %q", cfg.SiteURL)
	}
	if cfg.Title != "Mi blog" {
		t.Fatalf("Title = %q, want %q", cfg.Title, "Mi blog")
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if !cfg.InsecureSkipVerify {
		t.Fatalf("InsecureSkipVerify = false, want true")
	}
	if !strings.HasPrefix(cfg.LogFile, home) || !strings.HasSuffix(cfg.LogFile, "wpfeed.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.Proxy.Listen != ":8088" || cfg.Proxy.Target != "https://upstream.example.com" {
		t.Fatalf("Proxy = %#v", cfg.Proxy)
	}
	if cfg.Proxy.PathPrefix != "/api" {
		t.Fatalf("PathPrefix = %q, want /api", cfg.Proxy.PathPrefix)
	}
	if cfg.Proxy.ChangeOrigin || !cfg.Proxy.Secure {
		t.Fatalf("proxy flags = change_origin:%v secure:%v, want false/true", cfg.Proxy.ChangeOrigin, cfg.Proxy.Secure)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	path := writeConfig(t, `
site_url = "   "
title = ""

[proxy]
target = " "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want defaults", cfg)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `site_url = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidTimeoutFails(t *testing.T) {
	for _, value := range []string{"soon", "-1s", "0s"} {
		_, err := Load(writeConfig(t, `request_timeout = "`+value+`"`))
		if err == nil || !strings.Contains(err.Error(), "request_timeout") {
			t.Fatalf("Load(request_timeout=%q) error = %v, want request_timeout error", value, err)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
