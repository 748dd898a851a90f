// Package prefs persists wpfeed display preferences in
// ~/.config/wpfeed/prefs.toml. Read/unread marks are deliberately not
// stored here; they live only as long as the view.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user display preferences.
type Prefs struct {
	Theme        string
	ShowExcerpts bool
}

type filePrefs struct {
	Theme        string `toml:"theme"`
	ShowExcerpts *bool  `toml:"show_excerpts,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/wpfeed/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, ShowExcerpts: true}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Any problem reading or parsing the file
// yields defaults; preferences are never worth failing startup over.
func Load(path string) Prefs {
	p := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}

	var raw filePrefs
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return p
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		p.Theme = theme
	}
	if raw.ShowExcerpts != nil {
		p.ShowExcerpts = *raw.ShowExcerpts
	}
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	show := p.ShowExcerpts
	bytes, err := toml.Marshal(filePrefs{Theme: p.Theme, ShowExcerpts: &show})
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
