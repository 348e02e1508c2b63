// Package pipeline provides the core fetch → render pipeline for mandev.
//
// The HTTP dispatcher and the CLI both go through this package, which keeps
// format handling, artifact caching and warning reporting identical across
// entry points.
//
// # Architecture
//
// A request runs in two stages:
//
//  1. Fetch: resolve the username through a [store.Source]
//  2. Render: produce the requested [Format] from the document
//
// SVG and PNG artifacts are cached by a hash of the upstream document, so
// an unchanged profile is rasterized once.
//
// # Usage
//
//	runner := pipeline.NewRunner(source, cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Username: "janedev",
//	    Format:   pipeline.FormatSVG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w.Write(res.Body)
//
// Render a document already in hand (a local profile file):
//
//	res, err := runner.Render(ctx, doc, pipeline.FormatANSI)
package pipeline

import (
	"strings"
	"time"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/render"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "txt"
	FormatANSI Format = "ansi"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"

	// FormatHTML is the interactive web page, served elsewhere. The
	// dispatcher redirects it; the runner refuses it.
	FormatHTML Format = "html"
)

// RenderFormats lists the formats the runner can produce, in CLI order.
var RenderFormats = []Format{FormatText, FormatANSI, FormatSVG, FormatPNG, FormatJSON}

// CacheControl is sent with cacheable image responses.
const CacheControl = "public, max-age=3600, s-maxage=3600"

// TTLArtifact bounds how long rendered images stay cached.
const TTLArtifact = time.Hour

// ParseFormat validates s as a renderable format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range RenderFormats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"invalid format: %q (must be one of: txt, ansi, svg, png, json)", s)
}

// ParseFormats validates a list of formats, dropping duplicates.
func ParseFormats(list []string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, s := range list {
		f, err := ParseFormat(s)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// ContentType returns the HTTP content type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Cacheable reports whether responses in f carry [CacheControl] and are
// kept in the artifact cache.
func (f Format) Cacheable() bool {
	return f == FormatSVG || f == FormatPNG
}

// Ext returns the file extension for f, used by the CLI when writing files.
func (f Format) Ext() string {
	if f == FormatANSI {
		return ".ansi.txt"
	}
	return "." + string(f)
}

// Options selects what [Runner.Execute] produces.
type Options struct {
	Username string `json:"username"`
	Format   Format `json:"format"`

	// Year printed in man page footers. Zero means the current year.
	Year int `json:"year,omitempty"`
}

// Validate checks the username and format.
func (o *Options) Validate() error {
	if err := errors.ValidateUsername(o.Username); err != nil {
		return err
	}
	if o.Format == FormatHTML {
		return errors.New(errors.ErrCodeUnsupported, "html is served by the web app")
	}
	_, err := ParseFormat(string(o.Format))
	return err
}

// Result is one rendered response.
type Result struct {
	Format       Format
	Body         []byte
	ContentType  string
	CacheControl string // empty for uncacheable formats

	// Warnings lists tolerated problems in the document.
	Warnings render.Warnings

	// CacheHit is true when Body came from the artifact cache.
	CacheHit bool
	Duration time.Duration
}
