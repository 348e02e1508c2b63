package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/observability"
	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render"
	"github.com/matzehuels/mandev/pkg/render/card"
	"github.com/matzehuels/mandev/pkg/render/manpage"
)

// Render renders doc in format f without fetching or caching. JSON is the
// indented document. The CLI renders local profile files through here.
func (r *Runner) Render(ctx context.Context, doc *profile.Document, f Format) (*Result, error) {
	if _, err := ParseFormat(string(f)); err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := r.render(ctx, doc, f, 0)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) render(ctx context.Context, doc *profile.Document, f Format, year int) (res *Result, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(f), doc.Username)
	start := time.Now()
	defer func() {
		size := 0
		if res != nil {
			size = len(res.Body)
		}
		hooks.OnRenderComplete(ctx, string(f), doc.Username, size, time.Since(start), err)
	}()

	var (
		body  []byte
		warns render.Warnings
	)
	switch f {
	case FormatText, FormatANSI:
		page := manpage.Build(doc, manpage.WithYear(r.year(year)))
		warns = page.Warnings
		if f == FormatText {
			body = []byte(page.Text())
		} else {
			body = []byte(page.ANSI())
		}
	case FormatSVG:
		c := card.Build(doc)
		body, warns = c.SVG, c.Warnings
	case FormatPNG:
		c := card.Build(doc)
		warns = c.Warnings
		rz := r.Rasterizer
		if rz == nil {
			rz = render.Native{}
		}
		if body, err = rz.Rasterize(ctx, c.SVG, card.Width); err != nil {
			if !errors.Is(err, errors.ErrCodeRasterize) {
				err = errors.Wrap(errors.ErrCodeRasterize, err, "rasterize card")
			}
			return nil, err
		}
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode profile")
		}
		body = append(data, '\n')
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot render %q", f)
	}

	for _, w := range warns {
		hooks.OnWarning(ctx, doc.Username, w.Component, w.Message)
		r.logger().Warn(w.Message, "component", w.Component, "username", doc.Username)
	}
	return newResult(f, body, warns), nil
}

func newResult(f Format, body []byte, warns render.Warnings) *Result {
	res := &Result{
		Format:      f,
		Body:        body,
		ContentType: f.ContentType(),
		Warnings:    warns,
	}
	if f.Cacheable() {
		res.CacheControl = CacheControl
	}
	return res
}
