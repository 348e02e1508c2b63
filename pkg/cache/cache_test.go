package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%q, %v, %v), want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) should miss")
	}

	src := []byte("doc")
	if err := c.Set(ctx, "k", src, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(got) != "doc" {
		t.Errorf("Get = (%q, %v, %v), want stored copy", got, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want expired entry removed", c.Len())
	}
}

func TestMemoryCacheLimit(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("most recent entry should be kept")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "profile:jane", []byte(`{"username":"jane"}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "profile:jane")
	if err != nil || !hit || string(got) != `{"username":"jane"}` {
		t.Errorf("Get = (%q, %v, %v)", got, hit, err)
	}

	if err := c.Delete(ctx, "profile:jane"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "profile:jane"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "profile:jane"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("not json"), 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entries should be gone after Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.ProfileKey("jane"); got != "profile:jane" {
		t.Errorf("ProfileKey = %q", got)
	}

	svg := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", Year: 2026})
	png := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "png", Year: 2026})
	if svg == png {
		t.Error("different formats should produce different keys")
	}
	if !strings.HasPrefix(svg, "artifact:") {
		t.Errorf("ArtifactKey = %q, want artifact: prefix", svg)
	}
	if svg != k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", Year: 2026}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "mandev:")
	if got := scoped.ProfileKey("jane"); got != "mandev:profile:jane" {
		t.Errorf("ProfileKey = %q", got)
	}
	if got := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}); !strings.HasPrefix(got, "mandev:artifact:") {
		t.Errorf("ArtifactKey = %q", got)
	}
}
