package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/mandev/pkg/cache"
	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/httputil"
	"github.com/matzehuels/mandev/pkg/observability"
	"github.com/matzehuels/mandev/pkg/profile"
)

// DefaultTTL is how long fetched profiles stay cached.
const DefaultTTL = 5 * time.Minute

// maxBody bounds the upstream payload.
const maxBody = 4 << 20

// HTTPOptions configures [NewHTTPSource].
type HTTPOptions struct {
	// BaseURL of the profile service, e.g. "https://api.man.dev".
	BaseURL string

	// Client defaults to httputil.NewClient(httputil.DefaultTimeout).
	Client *http.Client

	// Cache defaults to cache.NullCache; Keyer to cache.DefaultKeyer.
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration

	// Attempts per fetch. Values below 2 disable retries. Only transport
	// errors and 5xx responses are retried.
	Attempts   int
	RetryDelay time.Duration
}

// HTTPSource fetches profiles from the profile service.
type HTTPSource struct {
	base     string
	client   *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	attempts int
	delay    time.Duration
	group    singleflight.Group
}

// NewHTTPSource validates opts and returns a source.
func NewHTTPSource(opts HTTPOptions) (*HTTPSource, error) {
	if err := errors.ValidateURL(opts.BaseURL); err != nil {
		return nil, err
	}
	s := &HTTPSource{
		base:     strings.TrimRight(opts.BaseURL, "/"),
		client:   opts.Client,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		ttl:      opts.TTL,
		attempts: max(opts.Attempts, 1),
		delay:    opts.RetryDelay,
	}
	if s.client == nil {
		s.client = httputil.NewClient(httputil.DefaultTimeout)
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if s.delay <= 0 {
		s.delay = 200 * time.Millisecond
	}
	return s, nil
}

// Fetch returns the profile for username.
func (s *HTTPSource) Fetch(ctx context.Context, username string) (*Entry, error) {
	if err := errors.ValidateUsername(username); err != nil {
		return nil, err
	}
	key := s.keyer.ProfileKey(username)

	if raw, ok, _ := s.cache.Get(ctx, key); ok {
		if e, err := newEntry(raw, username); err == nil {
			observability.Cache().OnCacheHit(ctx, "profile")
			return e, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "profile")

	v, err, _ := s.group.Do(key, func() (any, error) {
		// A flight that finished after our cache miss may have filled it.
		if raw, ok, _ := s.cache.Get(ctx, key); ok {
			if e, err := newEntry(raw, username); err == nil {
				return e, nil
			}
		}
		var raw []byte
		err := httputil.Retry(ctx, s.attempts, s.delay, func() error {
			var err error
			raw, err = s.get(ctx, username)
			return err
		})
		if err != nil {
			return nil, err
		}
		e, err := newEntry(raw, username)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "profile service returned an unreadable profile")
		}
		if err := s.cache.Set(ctx, key, raw, s.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, "profile", len(raw))
		}
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers sharing a flight get their own document.
	return newEntry(v.(*Entry).Raw, username)
}

func (s *HTTPSource) get(ctx context.Context, username string) ([]byte, error) {
	u := s.base + "/api/profile/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", httputil.UserAgent())

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, ctx.Err(), "profile request cancelled")
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeUnavailable, err, "reach profile service"))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeUnavailable, err, "read profile response"))
		}
		return raw, nil
	case code >= 400 && code < 500:
		return nil, errors.New(errors.ErrCodeNotFound, "no profile for %s (status %d)", username, code)
	case code >= 500:
		return nil, httputil.Retryable(errors.New(errors.ErrCodeUnavailable, "profile service status %d", code))
	default:
		return nil, errors.New(errors.ErrCodeUnavailable, "unexpected profile service status %d", code)
	}
}

func newEntry(raw []byte, username string) (*Entry, error) {
	doc, err := profile.Decode(raw)
	if err != nil {
		return nil, err
	}
	if doc.Username == "" {
		doc.Username = username
	}
	return &Entry{Raw: raw, Document: doc}, nil
}

// String describes the source for logs.
func (s *HTTPSource) String() string {
	return fmt.Sprintf("http(%s)", s.base)
}
