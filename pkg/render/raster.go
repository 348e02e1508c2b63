package render

import (
	"bytes"
	"context"
	"encoding/xml"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/fonts"
)

// Rasterizer converts SVG to PNG at the given pixel width. The height
// follows the SVG aspect ratio. A width of zero keeps the SVG's own width.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, width int) ([]byte, error)
}

// Rasterizer names accepted by [NewRasterizer].
const (
	RasterizerNative = "native"
	RasterizerRSVG   = "rsvg"
)

// NewRasterizer returns the rasterizer registered under name.
func NewRasterizer(name string) (Rasterizer, error) {
	switch name {
	case "", RasterizerNative:
		return Native{}, nil
	case RasterizerRSVG:
		return RSVG{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown rasterizer %q (want %s or %s)", name, RasterizerNative, RasterizerRSVG)
}

// Native rasterizes in-process. oksvg paints shapes; text elements, which
// oksvg skips, are drawn in a second pass with the Go Mono faces. Every call
// works on its own image, scanner and faces, so Native is safe for
// concurrent use.
type Native struct{}

func (Native) Rasterize(ctx context.Context, svg []byte, width int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err, "parse svg")
	}
	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, errors.New(errors.ErrCodeRasterize, "svg has no usable viewBox")
	}
	if width <= 0 {
		width = int(vb.W)
	}
	scale := float64(width) / vb.W
	height := int(math.Round(vb.H * scale))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts, err := parseTexts(svg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err, "parse svg text")
	}
	if err := drawTexts(img, texts, vb.X, vb.Y, scale); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err, "draw text")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err, "encode png")
	}
	return buf.Bytes(), nil
}

type svgText struct {
	x, y   float64
	size   float64
	bold   bool
	anchor string
	fill   color.Color
	body   string
}

// parseTexts collects the <text> elements of svg in document order.
func parseTexts(svg []byte) ([]svgText, error) {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	var (
		out []svgText
		cur *svgText
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "text" {
				continue
			}
			cur = &svgText{size: 16, fill: color.Black}
			for _, a := range t.Attr {
				switch a.Name.Local {
				case "x":
					cur.x, _ = strconv.ParseFloat(a.Value, 64)
				case "y":
					cur.y, _ = strconv.ParseFloat(a.Value, 64)
				case "font-size":
					if v, err := strconv.ParseFloat(strings.TrimSuffix(a.Value, "px"), 64); err == nil {
						cur.size = v
					}
				case "font-weight":
					cur.bold = a.Value == "bold" || a.Value == "700"
				case "text-anchor":
					cur.anchor = a.Value
				case "fill":
					if c, ok := parseHexColor(a.Value); ok {
						cur.fill = c
					}
				}
			}
		case xml.CharData:
			if cur != nil {
				cur.body += string(t)
			}
		case xml.EndElement:
			if t.Name.Local == "text" && cur != nil {
				out = append(out, *cur)
				cur = nil
			}
		}
	}
}

func drawTexts(img *image.RGBA, texts []svgText, ox, oy, scale float64) error {
	type faceKey struct {
		bold bool
		size float64
	}
	faces := map[faceKey]font.Face{}
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, t := range texts {
		key := faceKey{t.bold, t.size * scale}
		face, ok := faces[key]
		if !ok {
			var err error
			if face, err = fonts.NewFace(key.bold, key.size); err != nil {
				return err
			}
			faces[key] = face
		}

		body := drawable(face, t.body)
		d := &font.Drawer{Dst: img, Src: image.NewUniform(t.fill), Face: face}
		x := fixed.Int26_6(math.Round((t.x - ox) * scale * 64))
		switch t.anchor {
		case "end":
			x -= d.MeasureString(body)
		case "middle":
			x -= d.MeasureString(body) / 2
		}
		d.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(math.Round((t.y - oy) * scale * 64))}
		d.DrawString(body)
	}
	return nil
}

// missingGlyph stands in for runes the face cannot draw, such as the star
// on the GitHub line, which Go Mono lacks.
const missingGlyph = '*'

// drawable replaces every rune face has no glyph for with [missingGlyph].
func drawable(face font.Face, s string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := face.GlyphAdvance(r); !ok {
			return missingGlyph
		}
		return r
	}, s)
}

func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// RSVG shells out to rsvg-convert from librsvg, which renders fonts and
// embedded images faithfully.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVG struct {
	// Path to the binary. Empty means look up rsvg-convert on PATH.
	Path string
}

func (r RSVG) Rasterize(ctx context.Context, svg []byte, width int) ([]byte, error) {
	bin := r.Path
	if bin == "" {
		var err error
		if bin, err = exec.LookPath("rsvg-convert"); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRasterize, err,
				"png export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
		}
	}

	args := []string{"-f", "png"}
	if width > 0 {
		args = append(args, "-w", strconv.Itoa(width))
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterize, err, "rsvg-convert: %s", strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}
