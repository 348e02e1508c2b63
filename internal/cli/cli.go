// Package cli implements the mandev command-line interface.
//
// The CLI renders local profile files the same way the server renders
// published ones, so a developer can preview their man page and card
// before pushing. `mandev serve` runs the HTTP dispatcher itself.
//
// # Commands
//
//   - serve: run the profile server
//   - render: write a profile as txt, ansi, svg, png or json
//   - preview: show the man page in the terminal
//   - validate, doctor: check a profile file
//   - diff: compare a local profile with the published one
//   - export-json, init, themes, cache, completion
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging via
// charmbracelet/log. Configuration is read by viper from
// $XDG_CONFIG_HOME/mandev/config.toml, a .env file and MANDEV_* variables.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/mandev/pkg/buildinfo"
	"github.com/matzehuels/mandev/pkg/cache"
	"github.com/matzehuels/mandev/pkg/pipeline"
	"github.com/matzehuels/mandev/pkg/render"
	"github.com/matzehuels/mandev/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mandev"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	v   *viper.Viper
	cfg *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mandev",
		Short:         "mandev renders developer profiles as man pages and cards",
		Long:          `mandev renders developer profiles as Unix man pages for the terminal and as SVG/PNG cards for sharing, and serves them over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.config()
			return err
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.String("api-url", "", "profile API base URL (default https://api.man.dev)")
	flags.String("rasterizer", "", "PNG rasterizer: native or rsvg")
	c.bindFlag(keyAPIURL, flags.Lookup("api-url"))
	c.bindFlag(keyRasterizer, flags.Lookup("rasterizer"))

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.doctorCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.exportJSONCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// bindFlag makes flag the highest-precedence source for key. Unset flags
// fall through to env, .env, config file and defaults.
func (c *CLI) bindFlag(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	_ = c.v.BindPFlag(key, flag)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for rendering local documents.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	rz, err := render.NewRasterizer(cfg.Rasterizer)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(nil, nil, nil, c.Logger)
	r.Rasterizer = rz
	return r, nil
}

// newSource returns a source for the profile API, caching on disk unless
// noCache is set.
func (c *CLI) newSource(noCache bool) (*store.HTTPSource, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	fc, err := newCache(cfg.CacheDir, noCache)
	if err != nil {
		return nil, err
	}
	return store.NewHTTPSource(store.HTTPOptions{
		BaseURL:  cfg.APIURL,
		Cache:    fc,
		TTL:      cfg.CacheTTL,
		Attempts: cfg.FetchAttempts,
		Client:   newHTTPClient(cfg),
	})
}

// newCache opens the on-disk cache in dir. An empty dir means caching is
// unavailable and yields a NullCache.
func newCache(dir string, noCache bool) (cache.Cache, error) {
	if noCache || dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mandev/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/mandev/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
