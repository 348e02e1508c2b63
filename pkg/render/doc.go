// Package render holds what the mandev output formats share: SVG
// rasterization and the warnings a render can collect.
//
// # Formats
//
// Each format lives in its own subpackage and reads the same
// [profile.Document]:
//   - [manpage]: the plain and ANSI man pages
//   - [card]: the SVG and PNG profile cards
//
// Section order comes from [layout], palettes from [theme], and skill bars
// from [skill], so every format agrees on those.
//
// # Rasterization
//
// A [Rasterizer] turns card SVG into PNG. [Native] is pure Go (oksvg for
// shapes, x/image for text). [RSVG] shells out to rsvg-convert for
// higher-fidelity output when librsvg is installed.
//
//	svg := card.RenderSVG(doc)
//	png, err := render.Native{}.Rasterize(ctx, svg, 600)
//
// # Warnings
//
// Problems that do not stop a render (an unknown skill level, an unknown
// color scheme) are collected as [Warning] values and returned next to the
// output. They never become errors.
package render
