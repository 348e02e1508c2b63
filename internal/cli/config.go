package cli

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/httputil"
)

// envPrefix namespaces environment variables: MANDEV_API_URL, ...
const envPrefix = "MANDEV"

// Config is the resolved configuration. Sources, lowest precedence first:
// defaults, config.toml, .env in the working directory, MANDEV_*
// environment variables, command flags.
type Config struct {
	APIURL      string
	Addr        string
	WebURL      string
	ProfilesDir string

	Cache         string // memory, file, redis or none
	CacheDir      string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Rasterizer    string
	FetchTimeout  time.Duration
	FetchAttempts int
	LogLevel      string
}

// Configuration keys.
const (
	keyAPIURL        = "api_url"
	keyAddr          = "addr"
	keyWebURL        = "web_url"
	keyProfilesDir   = "profiles_dir"
	keyCache         = "cache"
	keyCacheDir      = "cache_dir"
	keyCacheTTL      = "cache_ttl"
	keyRedisAddr     = "redis_addr"
	keyRedisPassword = "redis_password"
	keyRedisDB       = "redis_db"
	keyRasterizer    = "rasterizer"
	keyFetchTimeout  = "fetch_timeout"
	keyFetchAttempts = "fetch_attempts"
	keyLogLevel      = "log_level"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyAPIURL, "https://api.man.dev")
	v.SetDefault(keyAddr, ":8080")
	v.SetDefault(keyWebURL, "https://man.dev")
	v.SetDefault(keyProfilesDir, "")
	v.SetDefault(keyCache, "memory")
	v.SetDefault(keyCacheDir, "")
	v.SetDefault(keyCacheTTL, 5*time.Minute)
	v.SetDefault(keyRedisAddr, "localhost:6379")
	v.SetDefault(keyRedisPassword, "")
	v.SetDefault(keyRedisDB, 0)
	v.SetDefault(keyRasterizer, "native")
	v.SetDefault(keyFetchTimeout, httputil.DefaultTimeout)
	v.SetDefault(keyFetchAttempts, 1)
	v.SetDefault(keyLogLevel, "info")
}

// config loads the configuration once per CLI.
func (c *CLI) config() (*Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	dir, _ := configDir()
	wd, _ := os.Getwd()
	cfg, err := loadConfig(c.v, dir, wd)
	if err != nil {
		return nil, err
	}
	lvl, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// --verbose wins over log_level.
	if c.Logger.GetLevel() != log.DebugLevel {
		c.Logger.SetLevel(lvl)
	}
	c.cfg = cfg
	return cfg, nil
}

// loadConfig reads configDir/config.toml and workDir/.env into v, both
// optional, and resolves the result.
func loadConfig(v *viper.Viper, configDir, workDir string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		path := filepath.Join(configDir, "config.toml")
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
			}
		}
	}

	if workDir != "" {
		env, err := readDotEnv(filepath.Join(workDir, ".env"))
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "merge .env")
		}
	}

	cfg := &Config{
		APIURL:        v.GetString(keyAPIURL),
		Addr:          v.GetString(keyAddr),
		WebURL:        v.GetString(keyWebURL),
		ProfilesDir:   v.GetString(keyProfilesDir),
		Cache:         strings.ToLower(v.GetString(keyCache)),
		CacheDir:      v.GetString(keyCacheDir),
		CacheTTL:      v.GetDuration(keyCacheTTL),
		RedisAddr:     v.GetString(keyRedisAddr),
		RedisPassword: v.GetString(keyRedisPassword),
		RedisDB:       v.GetInt(keyRedisDB),
		Rasterizer:    v.GetString(keyRasterizer),
		FetchTimeout:  v.GetDuration(keyFetchTimeout),
		FetchAttempts: v.GetInt(keyFetchAttempts),
		LogLevel:      v.GetString(keyLogLevel),
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir, _ = cacheDir()
	}
	if err := errors.ValidateURL(cfg.APIURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "api_url")
	}
	return cfg, nil
}

// readDotEnv returns the MANDEV_* entries of a .env file as config keys
// ("MANDEV_API_URL" becomes "api_url"). A missing file yields nothing.
func readDotEnv(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	env, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	out := make(map[string]any)
	for k, val := range env {
		if key, ok := strings.CutPrefix(k, envPrefix+"_"); ok {
			out[strings.ToLower(key)] = val
		}
	}
	return out, nil
}

func newHTTPClient(cfg *Config) *http.Client {
	return httputil.NewClient(cfg.FetchTimeout)
}
