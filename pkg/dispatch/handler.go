package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/pipeline"
	"github.com/matzehuels/mandev/pkg/render/card"
)

// DefaultWebURL hosts the interactive profile pages.
const DefaultWebURL = "https://man.dev"

const (
	msgUnavailable = "Upstream profile service unavailable"
	msgNotFound    = "Profile not found"
)

// Options configures [NewHandler].
type Options struct {
	// WebURL receives browsers asking for /<username>. Defaults to
	// [DefaultWebURL].
	WebURL string
	Logger *log.Logger
}

// NewHandler returns the HTTP handler serving profiles through runner.
func NewHandler(runner *pipeline.Runner, opts Options) http.Handler {
	if opts.WebURL == "" {
		opts.WebURL = DefaultWebURL
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/healthz", handleHealth)
	r.Get("/{name}", handleProfile(runner, opts))
	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func handleProfile(runner *pipeline.Runner, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ext := splitName(chi.URLParam(r, "name"))
		format, ok := Negotiate(ext, r.UserAgent(), r.URL.Query())
		if !ok {
			writeText(w, http.StatusNotFound, fmt.Sprintf("Unknown format %q\n", ext))
			return
		}

		if err := errors.ValidateUsername(username); err != nil {
			writeError(w, format, username, err)
			return
		}

		if format == pipeline.FormatHTML {
			http.Redirect(w, r, strings.TrimRight(opts.WebURL, "/")+"/"+username, http.StatusFound)
			return
		}

		res, err := runner.Execute(r.Context(), pipeline.Options{Username: username, Format: format})
		if err != nil {
			if !errors.Is(err, errors.ErrCodeNotFound) {
				opts.Logger.Error("render failed",
					"id", RequestID(r.Context()),
					"username", username,
					"format", format,
					"error", err)
			}
			writeError(w, format, username, err)
			return
		}

		w.Header().Set("Content-Type", res.ContentType)
		if res.CacheControl != "" {
			w.Header().Set("Cache-Control", res.CacheControl)
		}
		w.WriteHeader(http.StatusOK)
		w.Write(res.Body)
	}
}

// writeError answers in the requested format where one makes sense.
func writeError(w http.ResponseWriter, format pipeline.Format, username string, err error) {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		switch format {
		case pipeline.FormatSVG:
			writeSVG(w, http.StatusNotFound, card.RenderNotFoundSVG(username))
		case pipeline.FormatJSON:
			writeJSON(w, http.StatusNotFound, msgNotFound)
		default:
			writeText(w, http.StatusNotFound, "No manual entry for "+username+"\n")
		}

	case errors.IsUpstream(err):
		switch format {
		case pipeline.FormatSVG:
			writeSVG(w, http.StatusBadGateway, card.RenderErrorSVG(msgUnavailable))
		case pipeline.FormatJSON:
			writeJSON(w, http.StatusBadGateway, msgUnavailable)
		default:
			writeText(w, http.StatusBadGateway, msgUnavailable+"\n")
		}

	case errors.Is(err, errors.ErrCodeInvalidUsername):
		if format == pipeline.FormatJSON {
			writeJSON(w, http.StatusBadRequest, "Invalid username")
			return
		}
		writeText(w, http.StatusBadRequest, "Invalid username\n")

	case errors.Is(err, errors.ErrCodeRasterize):
		writeText(w, http.StatusInternalServerError, "Failed to render image\n")

	default:
		if format == pipeline.FormatJSON {
			writeJSON(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeText(w, http.StatusInternalServerError, "Internal server error\n")
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func writeSVG(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", pipeline.FormatSVG.ContentType())
	w.WriteHeader(status)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", pipeline.FormatJSON.ContentType())
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
