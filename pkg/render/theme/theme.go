// Package theme resolves color scheme identifiers to card palettes.
//
// Resolution never fails: an unknown or empty identifier falls back to
// [Default]. Callers that want to report the fallback use [Lookup].
package theme

import (
	"regexp"
	"sort"

	"github.com/matzehuels/mandev/pkg/profile"
)

// Colors is a complete card palette. Every field is a "#rrggbb" string.
type Colors struct {
	Background string
	Foreground string
	Accent     string
	Dim        string
	Border     string
}

// Default is the scheme used when none is given or the given one is unknown.
const Default = "dracula"

var schemes = map[string]Colors{
	"dracula":        {"#282a36", "#f8f8f2", "#bd93f9", "#6272a4", "#44475a"},
	"monokai":        {"#272822", "#f8f8f2", "#f92672", "#75715e", "#3e3d32"},
	"gruvbox":        {"#282828", "#ebdbb2", "#fabd2f", "#928374", "#3c3836"},
	"nord":           {"#2e3440", "#d8dee9", "#88c0d0", "#4c566a", "#3b4252"},
	"solarized-dark": {"#002b36", "#839496", "#b58900", "#586e75", "#073642"},
	"catppuccin":     {"#1e1e2e", "#cdd6f4", "#cba6f7", "#585b70", "#313244"},
	"tokyo-night":    {"#1a1b26", "#a9b1d6", "#7aa2f7", "#565f89", "#292e42"},
	"one-dark":       {"#282c34", "#abb2bf", "#61afef", "#5c6370", "#3e4451"},
	"github-dark":    {"#0d1117", "#c9d1d9", "#58a6ff", "#484f58", "#21262d"},
	"terminal-green": {"#0a0a0a", "#00ff00", "#00ff00", "#008000", "#003300"},
}

// Lookup returns the palette for id and whether id is registered.
func Lookup(id string) (Colors, bool) {
	c, ok := schemes[id]
	return c, ok
}

// Resolve returns the palette for id, or the [Default] palette.
func Resolve(id string) Colors {
	if c, ok := schemes[id]; ok {
		return c
	}
	return schemes[Default]
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ForTheme resolves a profile theme, applying its accent override when the
// override is a valid hex color. known is false when the scheme fell back.
func ForTheme(t profile.Theme) (c Colors, known bool) {
	id := t.Scheme
	if id == "" {
		id = Default
	}
	c, known = Lookup(id)
	if !known {
		c = schemes[Default]
	}
	if hexColor.MatchString(t.Accent) {
		c.Accent = t.Accent
	}
	return c, known
}

// Names returns the registered scheme identifiers in sorted order.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
