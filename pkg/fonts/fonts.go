// Package fonts provides the typefaces used to rasterize profile cards.
//
// Cards declare a monospace CSS font stack ([FontFamily]) for browsers. The
// native rasterizer cannot resolve system fonts, so it draws text with the
// Go Mono faces bundled in golang.org/x/image instead.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font stack written into card SVG.
const FontFamily = `'JetBrains Mono', 'Fira Code', 'Courier New', monospace`

// Parsed fonts are read-only after loading and shared by all callers.
var (
	loadOnce sync.Once
	regular  *opentype.Font
	bold     *opentype.Font
	loadErr  error
)

func load() {
	if regular, loadErr = opentype.Parse(gomono.TTF); loadErr != nil {
		return
	}
	bold, loadErr = opentype.Parse(gomonobold.TTF)
}

// Mono returns the parsed Go Mono font, bold or regular.
func Mono(isBold bool) (*opentype.Font, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	if isBold {
		return bold, nil
	}
	return regular, nil
}

// NewFace returns a face at size pixels. Faces are not safe for concurrent
// use; each render creates its own and closes it when done.
func NewFace(isBold bool, size float64) (font.Face, error) {
	f, err := Mono(isBold)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
