package theme

import (
	"testing"

	"github.com/matzehuels/mandev/pkg/profile"
)

func TestResolveFallback(t *testing.T) {
	dracula := Resolve("dracula")
	for _, id := range []string{"", "does-not-exist", "DRACULA"} {
		if got := Resolve(id); got != dracula {
			t.Errorf("Resolve(%q) = %+v, want dracula", id, got)
		}
	}
}

func TestResolveKnown(t *testing.T) {
	c := Resolve("nord")
	if c.Background != "#2e3440" || c.Accent != "#88c0d0" {
		t.Errorf("nord = %+v", c)
	}
	if _, ok := Lookup("nord"); !ok {
		t.Error("Lookup(nord) should be known")
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should be unknown")
	}
}

func TestEveryPaletteComplete(t *testing.T) {
	for _, id := range Names() {
		c := Resolve(id)
		for _, v := range []string{c.Background, c.Foreground, c.Accent, c.Dim, c.Border} {
			if !hexColor.MatchString(v) {
				t.Errorf("%s has invalid color %q", id, v)
			}
		}
	}
	if len(Names()) != 10 {
		t.Errorf("len(Names()) = %d, want 10", len(Names()))
	}
}

func TestForTheme(t *testing.T) {
	tests := []struct {
		name       string
		theme      profile.Theme
		wantAccent string
		wantKnown  bool
	}{
		{"empty is default", profile.Theme{}, "#bd93f9", true},
		{"known", profile.Theme{Scheme: "monokai"}, "#f92672", true},
		{"unknown falls back", profile.Theme{Scheme: "vaporwave"}, "#bd93f9", false},
		{"accent override", profile.Theme{Scheme: "nord", Accent: "#ff0000"}, "#ff0000", true},
		{"invalid accent ignored", profile.Theme{Scheme: "nord", Accent: "red"}, "#88c0d0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, known := ForTheme(tt.theme)
			if c.Accent != tt.wantAccent || known != tt.wantKnown {
				t.Errorf("ForTheme = (%s, %v), want (%s, %v)", c.Accent, known, tt.wantAccent, tt.wantKnown)
			}
		})
	}
}
