package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/observability"
)

// newLogger creates a logger that writes to w with "HH:MM:SS.ms" timestamps
// and filters below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseLevel maps a log_level setting to a log.Level.
func parseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidInput, err, "log level %q", s)
	}
	return lvl, nil
}

// progress logs completion of an operation with its elapsed time.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Rendered janedev.svg (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability
// =============================================================================

// logHooks forwards pipeline events to the logger. Routine events go to
// debug; warnings and upstream failures are logged at warn.
type logHooks struct {
	logger *log.Logger
}

// installLogHooks routes observability events through l until the returned
// func is called.
func installLogHooks(l *log.Logger) (restore func()) {
	h := logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
	return observability.Reset
}

func (h logHooks) OnRenderStart(_ context.Context, format, username string) {
	h.logger.Debug("render start", "format", format, "user", username)
}

func (h logHooks) OnRenderComplete(_ context.Context, format, username string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "format", format, "user", username, "err", err)
		return
	}
	h.logger.Debug("rendered", "format", format, "user", username, "bytes", size, "took", d.Round(time.Microsecond))
}

// OnWarning is a no-op: the runner already logs each warning through the
// same logger.
func (h logHooks) OnWarning(context.Context, string, string, string) {}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("upstream request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("upstream response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("upstream response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("upstream error", "method", method, "host", host, "path", path, "err", err)
}
