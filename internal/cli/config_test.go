package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg, err := loadConfig(viper.New(), t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.APIURL != "https://api.man.dev" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Addr != ":8080" || cfg.WebURL != "https://man.dev" {
		t.Errorf("Addr = %q, WebURL = %q", cfg.Addr, cfg.WebURL)
	}
	if cfg.Cache != cacheMemory || cfg.CacheTTL != 5*time.Minute {
		t.Errorf("Cache = %q, CacheTTL = %v", cfg.Cache, cfg.CacheTTL)
	}
	if cfg.CacheDir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.Rasterizer != "native" || cfg.FetchAttempts != 1 || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	configDir, workDir := t.TempDir(), t.TempDir()
	writeTestFile(t, configDir, "config.toml", `
api_url = "https://profiles.example.com"
addr = ":7000"
web_url = "https://file.example.com"
cache = "file"
`)
	writeTestFile(t, workDir, ".env", `
MANDEV_ADDR=:7100
MANDEV_CACHE_TTL=30s
MANDEV_WEB_URL=https://dotenv.example.com
UNRELATED=1
`)
	t.Setenv("MANDEV_WEB_URL", "https://env.example.com")
	t.Setenv("MANDEV_CACHE", "redis")

	v := viper.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("cache", "", "")
	if err := v.BindPFlag(keyCache, flags.Lookup("cache")); err != nil {
		t.Fatal(err)
	}
	if err := flags.Parse([]string{"--cache", "none"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(v, configDir, workDir)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	tests := []struct {
		name, got, want string
	}{
		{"api_url from config file", cfg.APIURL, "https://profiles.example.com"},
		{".env over config file", cfg.Addr, ":7100"},
		{"env over .env", cfg.WebURL, "https://env.example.com"},
		{"flag over env", cfg.Cache, cacheNone},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
}

func TestLoadConfigRejectsBadAPIURL(t *testing.T) {
	t.Setenv("MANDEV_API_URL", "ftp://example.com")
	if _, err := loadConfig(viper.New(), "", ""); err == nil {
		t.Error("loadConfig() should reject a non-http api_url")
	}
}

func TestReadDotEnv(t *testing.T) {
	dir := t.TempDir()
	got, err := readDotEnv(filepath.Join(dir, ".env"))
	if err != nil || len(got) != 0 {
		t.Errorf("missing .env = %v, %v; want empty, nil", got, err)
	}

	writeTestFile(t, dir, ".env", "MANDEV_REDIS_ADDR=cache:6379\nHOME=/nowhere\n")
	got, err = readDotEnv(filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got["redis_addr"] != "cache:6379" {
		t.Errorf("readDotEnv() = %v", got)
	}
}

func TestConfigCachedPerCLI(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())

	c := testCLI(t, Config{})
	c.cfg = nil
	first, err := c.config()
	if err != nil {
		t.Fatal(err)
	}
	second, _ := c.config()
	if first != second {
		t.Error("config() should load once")
	}
}
