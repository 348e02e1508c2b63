// Package card renders the shareable profile card as SVG and PNG.
//
// The card is a fixed 600×300 canvas: avatar, name and tagline at the top,
// then the first skills with level bars and a one-line GitHub summary near
// the bottom. Colors come from the document's theme. Sections follow the
// same layout order as the man page; sections the card has no room for are
// skipped.
//
// [RenderPNG] rasterizes the SVG at its logical width through a
// [render.Rasterizer].
package card
