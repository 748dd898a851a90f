package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p != Defaults() {
		t.Fatalf("Load = %#v, want %#v", p, Defaults())
	}
	if !p.ShowExcerpts {
		t.Fatalf("ShowExcerpts = false, want true by default")
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "wpfeed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "theme = \"Slate\"\nshow_excerpts = false\n"
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", p.Theme)
	}
	if p.ShowExcerpts {
		t.Fatalf("ShowExcerpts = true, want false")
	}
}

func TestSave_RoundTripsThroughNewDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	want := Prefs{Theme: "Kanagawa", ShowExcerpts: false}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := Load(path); got != want {
		t.Fatalf("Load after Save = %#v, want %#v", got, want)
	}
}

func TestLoad_DegradesGracefully(t *testing.T) {
	cases := map[string]string{
		"empty theme":  "theme = \"\"\n",
		"invalid toml": "not valid toml {{{\n",
		"wrong type":   "show_excerpts = \"yes\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if got := Load(path); got != Defaults() {
				t.Fatalf("Load = %#v, want defaults", got)
			}
		})
	}
}
