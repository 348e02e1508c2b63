package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mandev/pkg/cache"
	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render/card"
	"github.com/matzehuels/mandev/pkg/render/manpage"
	"github.com/matzehuels/mandev/pkg/store"
)

const janeJSON = `{"username":"janedev","profile":{"name":"Jane Doe","tagline":"Full Stack Developer"},"layout":{"sections":["bio","skills"]},"skills":[{"name":"Rust","level":"expert"}]}`

type fakeSource struct {
	docs  map[string]string
	err   error
	calls atomic.Int32
}

func (s *fakeSource) Fetch(_ context.Context, username string) (*store.Entry, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	raw, ok := s.docs[username]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no profile for %s", username)
	}
	doc, err := profile.Decode([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &store.Entry{Raw: []byte(raw), Document: doc}, nil
}

type countingRasterizer struct {
	calls atomic.Int32
	err   error
}

func (c *countingRasterizer) Rasterize(_ context.Context, svg []byte, width int) ([]byte, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return []byte(fmt.Sprintf("png:%d:%d", width, len(svg))), nil
}

func newTestRunner(src store.Source, c cache.Cache) *Runner {
	r := NewRunner(src, c, nil, log.New(io.Discard))
	r.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

func janeSource() *fakeSource {
	return &fakeSource{docs: map[string]string{
		"janedev":  janeJSON,
		"nameless": `{"username":"nameless","profile":{"name":""}}`,
		"odd":      `{"profile":{"name":"Odd"},"skills":[{"name":"Zig","level":"wizard"}]}`,
	}}
}

func TestExecuteText(t *testing.T) {
	r := newTestRunner(janeSource(), nil)
	res, err := r.Execute(context.Background(), Options{Username: "janedev", Format: FormatText})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	doc, _ := profile.Decode([]byte(janeJSON))
	want := manpage.RenderText(doc, manpage.WithYear(2026))
	if string(res.Body) != want {
		t.Errorf("body mismatch\n got:\n%s\nwant:\n%s", res.Body, want)
	}
	if res.ContentType != "text/plain; charset=utf-8" || res.CacheControl != "" {
		t.Errorf("headers = %q, %q", res.ContentType, res.CacheControl)
	}
	if !strings.Contains(string(res.Body), "Jane Doe -- Full Stack Developer") {
		t.Error("NAME line missing")
	}
}

func TestExecuteJSONPassthrough(t *testing.T) {
	r := newTestRunner(janeSource(), nil)
	res, err := r.Execute(context.Background(), Options{Username: "janedev", Format: FormatJSON})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(res.Body) != janeJSON || res.ContentType != "application/json" {
		t.Errorf("got %q %s", res.ContentType, res.Body)
	}
}

func TestExecuteErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		src  *fakeSource
		opts Options
		code errors.Code
	}{
		{"unknown user", janeSource(), Options{Username: "ghost", Format: FormatText}, errors.ErrCodeNotFound},
		{"no name", janeSource(), Options{Username: "nameless", Format: FormatSVG}, errors.ErrCodeNotFound},
		{"upstream down", &fakeSource{err: errors.New(errors.ErrCodeUnavailable, "down")}, Options{Username: "janedev", Format: FormatPNG}, errors.ErrCodeUnavailable},
		{"bad username", janeSource(), Options{Username: "../x", Format: FormatText}, errors.ErrCodeInvalidUsername},
		{"bad format", janeSource(), Options{Username: "janedev", Format: "pdf"}, errors.ErrCodeInvalidFormat},
		{"html", janeSource(), Options{Username: "janedev", Format: FormatHTML}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRunner(tt.src, nil)
			_, err := r.Execute(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteNotFoundSkipsRender(t *testing.T) {
	rz := &countingRasterizer{}
	r := newTestRunner(janeSource(), nil)
	r.Rasterizer = rz
	if _, err := r.Execute(context.Background(), Options{Username: "ghost", Format: FormatPNG}); err == nil {
		t.Fatal("expected error")
	}
	if rz.calls.Load() != 0 {
		t.Error("rasterizer ran for a missing profile")
	}
}

func TestExecuteCachesArtifacts(t *testing.T) {
	rz := &countingRasterizer{}
	r := newTestRunner(janeSource(), cache.NewMemoryCache(16))
	r.Rasterizer = rz
	ctx := context.Background()
	opts := Options{Username: "janedev", Format: FormatPNG}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Errorf("cache hits = %v, %v; want false, true", first.CacheHit, second.CacheHit)
	}
	if string(first.Body) != string(second.Body) {
		t.Error("cached body differs")
	}
	if n := rz.calls.Load(); n != 1 {
		t.Errorf("rasterized %d times, want 1", n)
	}
	if second.CacheControl != CacheControl || second.ContentType != "image/png" {
		t.Errorf("headers = %q, %q", second.ContentType, second.CacheControl)
	}
	if !strings.HasPrefix(string(first.Body), fmt.Sprintf("png:%d:", card.Width)) {
		t.Errorf("rasterized at wrong width: %s", first.Body)
	}
}

func TestExecuteRasterizeFailure(t *testing.T) {
	r := newTestRunner(janeSource(), nil)
	r.Rasterizer = &countingRasterizer{err: fmt.Errorf("no canvas")}
	_, err := r.Execute(context.Background(), Options{Username: "janedev", Format: FormatPNG})
	if !errors.Is(err, errors.ErrCodeRasterize) {
		t.Errorf("err = %v, want rasterize error", err)
	}
}

func TestExecuteWarnings(t *testing.T) {
	r := newTestRunner(janeSource(), nil)
	res, err := r.Execute(context.Background(), Options{Username: "odd", Format: FormatSVG})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Component != "skill" {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if !strings.Contains(string(res.Body), "man.dev/odd") {
		t.Error("username should default to the requested one")
	}
}

func TestRenderLocal(t *testing.T) {
	doc, _ := profile.Decode([]byte(janeJSON))
	r := newTestRunner(nil, nil)
	ctx := context.Background()

	svg, err := r.Render(ctx, doc, FormatSVG)
	if err != nil || !strings.HasPrefix(string(svg.Body), "<svg") {
		t.Errorf("svg = %.40s, %v", svg.Body, err)
	}

	js, err := r.Render(ctx, doc, FormatJSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var back profile.Document
	if err := json.Unmarshal(js.Body, &back); err != nil || back.Profile.Name != "Jane Doe" {
		t.Errorf("json did not round-trip: %v", err)
	}

	if _, err := r.Render(ctx, doc, FormatHTML); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("html err = %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"svg", "TXT", "svg", " png "})
	if err != nil {
		t.Fatal(err)
	}
	want := []Format{FormatSVG, FormatText, FormatPNG}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := ParseFormats([]string{"svg", "pdf"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		f         Format
		ct        string
		cacheable bool
		ext       string
	}{
		{FormatText, "text/plain; charset=utf-8", false, ".txt"},
		{FormatANSI, "text/plain; charset=utf-8", false, ".ansi.txt"},
		{FormatSVG, "image/svg+xml", true, ".svg"},
		{FormatPNG, "image/png", true, ".png"},
		{FormatJSON, "application/json", false, ".json"},
	}
	for _, tt := range tests {
		if got := tt.f.ContentType(); got != tt.ct {
			t.Errorf("%s.ContentType() = %q", tt.f, got)
		}
		if got := tt.f.Cacheable(); got != tt.cacheable {
			t.Errorf("%s.Cacheable() = %v", tt.f, got)
		}
		if got := tt.f.Ext(); got != tt.ext {
			t.Errorf("%s.Ext() = %q", tt.f, got)
		}
	}
}

type sharedSource struct{ entry *store.Entry }

func (s sharedSource) Fetch(context.Context, string) (*store.Entry, error) { return s.entry, nil }

func TestExecuteLeavesSourceDocumentUntouched(t *testing.T) {
	raw := `{"profile":{"name":"Odd"}}`
	doc, err := profile.Decode([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	src := sharedSource{&store.Entry{Raw: []byte(raw), Document: doc}}
	r := newTestRunner(src, nil)

	for _, user := range []string{"alice", "bob"} {
		res, err := r.Execute(context.Background(), Options{Username: user, Format: FormatText})
		if err != nil {
			t.Fatalf("Execute(%s): %v", user, err)
		}
		if want := strings.ToUpper(user) + "(7)"; !strings.Contains(string(res.Body), want) {
			t.Errorf("%s: masthead missing %q:\n%s", user, want, res.Body)
		}
	}
	if doc.Username != "" {
		t.Errorf("source document username = %q, want empty", doc.Username)
	}
}
