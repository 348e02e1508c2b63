package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/cache"
	"github.com/matzehuels/mandev/pkg/dispatch"
	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/pipeline"
	"github.com/matzehuels/mandev/pkg/render"
	"github.com/matzehuels/mandev/pkg/store"
)

// Cache backends selectable with --cache.
const (
	cacheMemory = "memory"
	cacheFile   = "file"
	cacheRedis  = "redis"
	cacheNone   = "none"
)

// memoryCacheEntries bounds the in-process cache.
const memoryCacheEntries = 4096

// shutdownTimeout is how long in-flight requests get after a signal.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the profile server",
		Long: `Run the HTTP server answering /<username>[.txt|.svg|.png|.json].

Profiles are fetched from the profile API (--api-url) or, for local
development, read from --profiles-dir/<username>.{json,toml,yaml}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("addr", "", "listen address (default :8080)")
	f.String("web-url", "", "where browsers are redirected (default https://man.dev)")
	f.String("profiles-dir", "", "serve profiles from local files instead of the API")
	f.String("cache", "", "cache backend: memory, file, redis or none (default memory)")
	f.String("redis-addr", "", "Redis address for --cache redis (default localhost:6379)")
	c.bindFlag(keyAddr, f.Lookup("addr"))
	c.bindFlag(keyWebURL, f.Lookup("web-url"))
	c.bindFlag(keyProfilesDir, f.Lookup("profiles-dir"))
	c.bindFlag(keyCache, f.Lookup("cache"))
	c.bindFlag(keyRedisAddr, f.Lookup("redis-addr"))

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *Config) error {
	restore := installLogHooks(c.Logger)
	defer restore()

	runner, err := c.newServeRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: dispatch.NewHandler(runner, dispatch.Options{
			WebURL: cfg.WebURL,
			Logger: c.Logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.FetchTimeout + 20*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr, "source", runner.Source, "cache", cfg.Cache, "rasterizer", cfg.Rasterizer)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServeRunner wires source, shared cache and rasterizer for the server.
func (c *CLI) newServeRunner(ctx context.Context, cfg *Config) (*pipeline.Runner, error) {
	shared, keyer, err := openServeCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var src store.Source
	if cfg.ProfilesDir != "" {
		src, err = store.NewDirSource(cfg.ProfilesDir)
	} else {
		src, err = store.NewHTTPSource(store.HTTPOptions{
			BaseURL:  cfg.APIURL,
			Client:   newHTTPClient(cfg),
			Cache:    shared,
			Keyer:    keyer,
			TTL:      cfg.CacheTTL,
			Attempts: cfg.FetchAttempts,
		})
	}
	if err != nil {
		shared.Close()
		return nil, err
	}

	rz, err := render.NewRasterizer(cfg.Rasterizer)
	if err != nil {
		shared.Close()
		return nil, err
	}

	r := pipeline.NewRunner(src, shared, keyer, c.Logger)
	r.Rasterizer = rz
	return r, nil
}

// openServeCache opens the backend named by cfg.Cache. Redis keys are
// namespaced so several services can share one instance.
func openServeCache(ctx context.Context, cfg *Config) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	switch cfg.Cache {
	case "", cacheMemory:
		return cache.NewMemoryCache(memoryCacheEntries), keyer, nil
	case cacheFile:
		if cfg.CacheDir == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "cache_dir is required for the file cache")
		}
		fc, err := cache.NewFileCache(cfg.CacheDir)
		return fc, keyer, err
	case cacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(keyer, appName+":"), nil
	case cacheNone:
		return cache.NewNullCache(), keyer, nil
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (use memory, file, redis or none)", cfg.Cache)
	}
}
