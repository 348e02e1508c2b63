// Package skill maps skill levels to bar fills for every output format.
package skill

import (
	"math"
	"strings"

	"github.com/matzehuels/mandev/pkg/profile"
)

// DefaultBarWidth is the text bar width in runes.
const DefaultBarWidth = 20

const (
	filled = "█"
	empty  = "░"
)

// FillRatio returns the bar fill for level. Unknown levels return 0 and
// false; they are tolerated, never fatal.
func FillRatio(level profile.SkillLevel) (float64, bool) {
	switch level {
	case profile.Beginner:
		return 0.25, true
	case profile.Intermediate:
		return 0.5, true
	case profile.Advanced:
		return 0.75, true
	case profile.Expert:
		return 1, true
	}
	return 0, false
}

// Fill returns how many of width units are filled at ratio. Ratios are
// clamped to [0, 1].
func Fill(ratio float64, width int) int {
	if width <= 0 {
		return 0
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return int(math.Round(float64(width) * ratio))
}

// BarForRatio renders a text bar of exactly width runes.
func BarForRatio(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	n := Fill(ratio, width)
	return strings.Repeat(filled, n) + strings.Repeat(empty, width-n)
}

// ASCIIBar renders the text bar for level.
func ASCIIBar(level profile.SkillLevel, width int) string {
	r, _ := FillRatio(level)
	return BarForRatio(r, width)
}

// Rect is an SVG rectangle in user units.
type Rect struct {
	X, Y, Width, Height int
}

// SVGBarRects returns the track (the whole bar) and the fill for level.
// The fill has zero width for unknown levels.
func SVGBarRects(level profile.SkillLevel, x, y, width, height int) (track, fill Rect) {
	r, _ := FillRatio(level)
	track = Rect{X: x, Y: y, Width: width, Height: height}
	fill = Rect{X: x, Y: y, Width: Fill(r, width), Height: height}
	return track, fill
}
