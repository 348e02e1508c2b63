package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mandev/pkg/cache"
	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/observability"
	"github.com/matzehuels/mandev/pkg/render"
	"github.com/matzehuels/mandev/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both the server and the CLI use it.
//
// The Runner holds no per-request state; multiple goroutines can safely
// share one.
type Runner struct {
	Source     store.Source
	Cache      cache.Cache
	Keyer      cache.Keyer
	Rasterizer render.Rasterizer
	Logger     *log.Logger

	// Now supplies the footer year. Defaults to time.Now.
	Now func() time.Time
}

// NewRunner creates a runner. A nil cache disables artifact caching, a nil
// keyer uses the default layout and a nil logger uses log.Default. The
// rasterizer defaults to render.Native.
func NewRunner(src store.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source:     src,
		Cache:      c,
		Keyer:      keyer,
		Rasterizer: render.Native{},
		Logger:     logger,
		Now:        time.Now,
	}
}

// Execute fetches the profile for opts.Username and renders it.
//
// A missing profile fails with errors.ErrCodeNotFound before any renderer
// runs. An unreachable profile service fails with errors.ErrCodeUnavailable.
// JSON passes the upstream bytes through untouched.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInternal, "runner has no profile source")
	}
	start := time.Now()

	entry, err := r.Source.Fetch(ctx, opts.Username)
	if err != nil {
		return nil, err
	}
	doc := entry.Document
	if doc.Profile.Name == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "profile %s has no name", opts.Username)
	}
	if doc.Username == "" {
		// The entry may be shared through the source cache; name a copy.
		named := *doc
		named.Username = opts.Username
		doc = &named
	}

	if opts.Format == FormatJSON {
		return &Result{
			Format:      FormatJSON,
			Body:        entry.Raw,
			ContentType: FormatJSON.ContentType(),
			Duration:    time.Since(start),
		}, nil
	}

	var key string
	if opts.Format.Cacheable() {
		key = r.Keyer.ArtifactKey(cache.Hash(entry.Raw), cache.ArtifactKeyOpts{Format: string(opts.Format)})
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			res := newResult(opts.Format, data, nil)
			res.CacheHit = true
			res.Duration = time.Since(start)
			return res, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	res, err := r.render(ctx, doc, opts.Format, opts.Year)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)

	if key != "" {
		if err := r.Cache.Set(ctx, key, res.Body, TTLArtifact); err != nil {
			r.logger().Warn("artifact cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(res.Body))
		}
	}

	r.logger().Debug("rendered profile",
		"username", opts.Username,
		"format", opts.Format,
		"bytes", len(res.Body),
		"duration", res.Duration)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) year(explicit int) int {
	if explicit != 0 {
		return explicit
	}
	if r.Now == nil {
		return time.Now().Year()
	}
	return r.Now().Year()
}
