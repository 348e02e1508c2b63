package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mandev/pkg/errors"
)

const upstreamJSON = `{
  "username": "janedev",
  "profile": {"name": "Jane Doe", "tagline": "Full Stack Developer"},
  "theme": {"scheme": "nord"},
  "layout": {"sections": ["bio", "skills", "github"]},
  "skills": [{"name": "Rust", "level": "expert"}, {"name": "Go", "level": "guru"}],
  "github": {"username": "jane", "show_pinned": false},
  "github_stats": {"total_stars": 1200, "total_repos": 42, "followers": 890,
    "total_contributions": 3400, "current_streak": 3, "longest_streak": 40,
    "languages": [{"name": "Go", "percentage": 48.2, "color": "#00ADD8"}],
    "pinned_repos": [], "contributions": [{"date": "2026-01-01", "count": 4}],
    "fetched_at": "2026-01-02T00:00:00Z"},
  "npm_stats": null,
  "github_verified": true,
  "view_count": 17
}`

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(upstreamJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Username != "janedev" || doc.Profile.Name != "Jane Doe" {
		t.Errorf("identity = %q/%q", doc.Username, doc.Profile.Name)
	}
	if doc.Skills[1].Level.Known() {
		t.Error("unknown level should decode but not be Known")
	}

	gh := doc.GitHub()
	if gh.Stats == nil || gh.Stats.TotalStars != 1200 {
		t.Fatalf("github stats = %+v", gh.Stats)
	}
	if !gh.Config.StatsEnabled() || gh.Config.PinnedEnabled() {
		t.Error("show_stats should default on and show_pinned should be off")
	}
	if doc.Npm().Stats != nil {
		t.Error("null npm_stats should decode to nil")
	}
	if !doc.GitHubVerified || doc.ViewCount != 17 {
		t.Error("service-managed fields should decode")
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("{"))
	if !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("err = %v, want INVALID_PROFILE", err)
	}
}

func TestConfigDefaultsOnNil(t *testing.T) {
	var gh *GitHubConfig
	if !gh.StatsEnabled() || !gh.LanguagesEnabled() || !gh.PinnedEnabled() || !gh.HeatmapEnabled() {
		t.Error("nil github config should enable everything")
	}
	var npm *NpmConfig
	if npm.PackageLimit() != 10 || !npm.DownloadsEnabled() {
		t.Error("nil npm config defaults")
	}
	var devto *DevToConfig
	if devto.ArticleLimit() != 5 {
		t.Errorf("devto ArticleLimit = %d, want 5", devto.ArticleLimit())
	}
	if (&HashnodeConfig{MaxArticles: 2}).ArticleLimit() != 2 {
		t.Error("explicit cap should win")
	}
	if (&PyPIConfig{ShowDownloads: Bool(false)}).DownloadsEnabled() {
		t.Error("explicit false should disable")
	}
}

const tomlProfile = `
[profile]
name = "Bob"
tagline = "Builder"

[theme]
scheme = "gruvbox"

[layout]
sections = ["bio", "links"]

[[links]]
label = "GitHub"
url = "https://github.com/bob"

[npm]
username = "bob"
show_downloads = false
`

const yamlProfile = `
profile:
  name: Bob
  tagline: Builder
theme:
  scheme: gruvbox
layout:
  sections: [bio, links]
links:
  - label: GitHub
    url: https://github.com/bob
npm:
  username: bob
  show_downloads: false
`

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"p.toml": tomlProfile,
		"p.yaml": yamlProfile,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			doc, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if doc.Profile.Name != "Bob" || doc.Theme.Scheme != "gruvbox" {
				t.Errorf("profile = %+v theme = %+v", doc.Profile, doc.Theme)
			}
			if len(doc.Links) != 1 || doc.Links[0].URL != "https://github.com/bob" {
				t.Errorf("links = %+v", doc.Links)
			}
			if doc.NpmConfig == nil || doc.NpmConfig.DownloadsEnabled() || !doc.NpmConfig.PackagesEnabled() {
				t.Errorf("npm config = %+v", doc.NpmConfig)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing file err = %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	_ = os.WriteFile(bad, []byte("[profile\nname="), 0o644)
	if _, err := LoadFile(bad); !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("bad toml err = %v", err)
	}

	ini := filepath.Join(dir, "p.ini")
	_ = os.WriteFile(ini, []byte("x"), 0o644)
	if _, err := LoadFile(ini); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadDir(dir); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("empty dir err = %v, want NOT_FOUND", err)
	}

	_ = os.WriteFile(filepath.Join(dir, ".mandev.yml"), []byte(yamlProfile), 0o644)
	_ = os.WriteFile(filepath.Join(dir, ".mandev.toml"), []byte(tomlProfile), 0o644)

	_, path, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if filepath.Base(path) != ".mandev.toml" {
		t.Errorf("path = %s, want .mandev.toml to win", path)
	}
}

func TestConfigJSON(t *testing.T) {
	remote, _ := Decode([]byte(upstreamJSON))
	out, err := ConfigJSON(remote)
	if err != nil {
		t.Fatalf("ConfigJSON: %v", err)
	}
	for _, banned := range []string{"github_stats", "username\": \"janedev", "view_count", "github_verified"} {
		if strings.Contains(string(out), banned) {
			t.Errorf("ConfigJSON should drop %q:\n%s", banned, out)
		}
	}

	var generic map[string]any
	if err := json.Unmarshal(out, &generic); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if strings.Index(string(out), `"layout"`) > strings.Index(string(out), `"profile"`) {
		t.Error("keys should be sorted")
	}

	again, _ := ConfigJSON(remote)
	if string(out) != string(again) {
		t.Error("ConfigJSON should be deterministic")
	}
}

func TestMarshalTOMLRoundTrip(t *testing.T) {
	doc := &Document{
		Profile: Profile{Name: "Bob", Tagline: "Builder"},
		Skills:  []Skill{{Name: "Go", Level: Advanced}},
	}
	out, err := MarshalTOML(doc)
	if err != nil {
		t.Fatalf("MarshalTOML: %v", err)
	}
	back, err := Parse(out, ".toml")
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, out)
	}
	if back.Profile.Name != "Bob" || len(back.Skills) != 1 || back.Skills[0].Level != Advanced {
		t.Errorf("round trip = %+v", back)
	}
}

func TestCheck(t *testing.T) {
	doc := &Document{
		Theme:      Theme{Mode: "sepia"},
		Layout:     Layout{Sections: []string{"bio", "blog"}},
		Skills:     []Skill{{Name: "Go", Level: "guru"}},
		Experience: []Experience{{Role: "Eng"}},
		Links:      []Link{{Label: "x"}},
		PyPIConfig: &PyPIConfig{},
	}
	issues := Check(doc)

	want := []string{
		"profile.name",
		"theme.mode",
		"layout.sections[1]",
		"skills[0].level",
		"experience[0].company",
		"experience[0].start",
		"links[0].url",
		"pypi.packages",
	}
	if len(issues) != len(want) {
		t.Fatalf("got %d issues %v, want %d", len(issues), issues, len(want))
	}
	for i, f := range want {
		if issues[i].Field != f {
			t.Errorf("issue[%d] = %s, want field %s", i, issues[i], f)
		}
	}

	err := Validate(doc)
	if !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("Validate err = %v", err)
	}
	if Validate(&Document{Profile: Profile{Name: "ok"}}) != nil {
		t.Error("minimal profile should validate")
	}
}

func TestDoctor(t *testing.T) {
	t.Run("good profile", func(t *testing.T) {
		doc := &Document{
			Profile: Profile{
				Name:    "Jane",
				Tagline: "Dev",
				About:   strings.Repeat("I build distributed systems and tools. ", 3),
			},
			Skills:     []Skill{{Name: "Go", Level: Expert}},
			Projects:   []Project{{Name: "mandev", Description: "profiles"}},
			Experience: []Experience{{Role: "Eng", Company: "Acme", Start: "2020-01", End: "present"}},
			Links:      []Link{{Label: "GitHub", URL: "https://github.com/jane"}},
		}
		r := Doctor(doc)
		if !r.Passed() || len(r.Findings) != 0 {
			t.Errorf("findings = %+v", r.Findings)
		}
		if !strings.Contains(r.Markdown("Doctor"), "All checks passed") {
			t.Error("markdown should say passed")
		}
	})

	t.Run("issues", func(t *testing.T) {
		doc := &Document{
			Profile:    Profile{Name: "Jane"},
			Projects:   []Project{{Name: "a"}, {Name: "b", Description: "x"}},
			Experience: []Experience{{Role: "Eng", Company: "Acme", Start: "Jan 2020", End: "2021-13"}},
		}
		r := Doctor(doc)
		if r.Passed() {
			t.Error("report should fail")
		}
		md := strings.ToLower(r.Markdown("Doctor"))
		for _, want := range []string{
			"missing profile.about",
			"no skills listed",
			"1 project(s) missing descriptions",
			`"jan 2020" is not yyyy-mm`,
			`"2021-13" is not yyyy-mm`,
			"no links listed",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("markdown missing %q:\n%s", want, md)
			}
		}
	})

	t.Run("short about is a suggestion", func(t *testing.T) {
		doc := &Document{Profile: Profile{Name: "Jane", Tagline: "x", About: "short"},
			Skills: []Skill{{Name: "Go", Level: Expert}}, Projects: []Project{{Name: "a", Description: "b"}},
			Links: []Link{{Label: "a", URL: "b"}}}
		r := Doctor(doc)
		if !r.Passed() || len(r.Findings) != 1 {
			t.Errorf("findings = %+v", r.Findings)
		}
	})
}

func TestExampleProfiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "profiles", "*.mandev.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example profiles found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			doc, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if err := Validate(doc); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}
