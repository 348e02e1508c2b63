package card

import (
	"context"

	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts    []Option
	rasterizer render.Rasterizer
}

// WithSVGOptions passes options through to the underlying SVG renderer.
func WithSVGOptions(opts ...Option) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithRasterizer selects the rasterizer (default [render.Native]).
func WithRasterizer(rz render.Rasterizer) PNGOption {
	return func(r *pngRenderer) { r.rasterizer = rz }
}

// RenderPNG renders doc as a PNG card at the card's logical width.
func RenderPNG(ctx context.Context, doc *profile.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{rasterizer: render.Native{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r.rasterizer.Rasterize(ctx, RenderSVG(doc, r.svgOpts...), Width)
}
