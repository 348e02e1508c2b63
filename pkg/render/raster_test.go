package render

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/fonts"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">
  <rect width="200" height="100" fill="#102030"/>
  <text x="10" y="60" fill="#ffffff" font-size="40" font-weight="bold">MMMM</text>
  <text x="190" y="90" fill="#ffffff" font-size="10" text-anchor="end">end</text>
</svg>`

func TestNativeRasterize(t *testing.T) {
	data, err := Native{}.Rasterize(context.Background(), []byte(testSVG), 0)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("size = %v", b)
	}
	if got := color.RGBAModel.Convert(img.At(195, 5)); got != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Errorf("background = %v", got)
	}

	white := 0
	for y := 25; y < 60; y++ {
		for x := 10; x < 120; x++ {
			if c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA); c.R > 0xc0 {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("text was not drawn")
	}
}

func TestNativeScales(t *testing.T) {
	data, err := Native{}.Rasterize(context.Background(), []byte(testSVG), 400)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	img, _ := png.Decode(bytes.NewReader(data))
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("size = %v, want 400x200", b)
	}
}

func TestNativeDeterministic(t *testing.T) {
	a, _ := Native{}.Rasterize(context.Background(), []byte(testSVG), 0)
	b, _ := Native{}.Rasterize(context.Background(), []byte(testSVG), 0)
	if !bytes.Equal(a, b) {
		t.Error("rasterizing twice gave different bytes")
	}
}

func TestDrawableReplacesMissingGlyphs(t *testing.T) {
	face, err := fonts.NewFace(false, 12)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	tests := []struct {
		in, want string
	}{
		{"★ 1,234  ·  repos: 42", "* 1,234  ·  repos: 42"},
		{"Jane Doe", "Jane Doe"},
		{"日本", "**"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := drawable(face, tt.in); got != tt.want {
			t.Errorf("drawable(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNativeStarMatchesFallback(t *testing.T) {
	svg := func(body string) []byte {
		return []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="40" viewBox="0 0 100 40">
  <rect width="100" height="40" fill="#000000"/>
  <text x="10" y="30" fill="#ffffff" font-size="20">` + body + `</text>
</svg>`)
	}
	star, err := Native{}.Rasterize(context.Background(), svg("★ 5"), 0)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	fallback, err := Native{}.Rasterize(context.Background(), svg("* 5"), 0)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if !bytes.Equal(star, fallback) {
		t.Error("star should draw as the fallback glyph, not a missing-glyph box")
	}
}

func TestNativeRejectsBadSVG(t *testing.T) {
	_, err := Native{}.Rasterize(context.Background(), []byte("not an svg"), 0)
	if !errors.Is(err, errors.ErrCodeRasterize) {
		t.Errorf("err = %v, want rasterize error", err)
	}
}

func TestRSVGMissingBinary(t *testing.T) {
	_, err := RSVG{Path: "/nonexistent/rsvg-convert"}.Rasterize(context.Background(), []byte(testSVG), 0)
	if !errors.Is(err, errors.ErrCodeRasterize) {
		t.Errorf("err = %v, want rasterize error", err)
	}
}

func TestNewRasterizer(t *testing.T) {
	for name, want := range map[string]Rasterizer{"": Native{}, "native": Native{}, "rsvg": RSVG{}} {
		got, err := NewRasterizer(name)
		if err != nil || got != want {
			t.Errorf("NewRasterizer(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := NewRasterizer("magick"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown rasterizer err = %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	if c, ok := parseHexColor("#abc"); !ok || c != (color.RGBA{0xaa, 0xbb, 0xcc, 0xff}) {
		t.Errorf("#abc = %v, %v", c, ok)
	}
	if _, ok := parseHexColor("red"); ok {
		t.Error("named colors are not supported")
	}
}
