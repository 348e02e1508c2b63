package card

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/mandev/pkg/fonts"
	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render"
	"github.com/matzehuels/mandev/pkg/render/layout"
	"github.com/matzehuels/mandev/pkg/render/skill"
	"github.com/matzehuels/mandev/pkg/render/theme"
)

// Canvas size in SVG user units.
const (
	Width  = 600
	Height = 300
)

const (
	pad        = 24
	avatarSize = 64
	barX       = pad + 130
	barWidth   = 120
	barHeight  = 8
	maxSkills  = 5
	statsFloor = 250
)

// Option configures SVG rendering.
type Option func(*svgRenderer)

type svgRenderer struct {
	username string
}

// WithUsername sets the name in the watermark. Defaults to the document's
// username.
func WithUsername(u string) Option { return func(r *svgRenderer) { r.username = u } }

// Card is a rendered SVG card with the warnings raised while building it.
type Card struct {
	SVG      []byte
	Warnings render.Warnings
}

// RenderSVG renders doc as an SVG card.
func RenderSVG(doc *profile.Document, opts ...Option) []byte {
	return Build(doc, opts...).SVG
}

// Build renders doc and reports tolerated problems such as an unknown theme
// or skill level.
func Build(doc *profile.Document, opts ...Option) *Card {
	r := svgRenderer{username: doc.Username}
	for _, opt := range opts {
		opt(&r)
	}

	c := &Card{}
	colors, known := theme.ForTheme(doc.Theme)
	if !known {
		c.Warnings.Add("theme", "unknown scheme %q, using %s", doc.Theme.Scheme, theme.Default)
	}

	var buf bytes.Buffer
	openCanvas(&buf, colors)

	textX := pad
	if doc.Profile.Avatar != "" {
		renderAvatar(&buf, doc.Profile.Avatar, colors)
		textX = pad + avatarSize + 16
	}

	name := doc.Profile.Name
	if name == "" {
		name = r.username
	}
	y := pad + 20
	fmt.Fprintf(&buf, `  <text x="%d" y="%d" fill="%s" font-size="18" font-weight="bold">%s</text>`+"\n",
		textX, y, colors.Foreground, escape(name))
	y += 22
	if t := doc.Profile.Tagline; t != "" {
		fmt.Fprintf(&buf, `  <text x="%d" y="%d" fill="%s" font-size="12">%s</text>`+"\n",
			textX, y, colors.Dim, escape(t))
		y += 20
	}
	if doc.Profile.Avatar != "" {
		y = max(y+8, pad+avatarSize+16)
	} else {
		y += 8
	}

	sections := cardSections(doc)
	for i, name := range sections {
		switch name {
		case profile.SectionSkills:
			y = renderSkills(&buf, doc.Skills, y, colors, &c.Warnings)
		case profile.SectionGitHub:
			// Pinned above the watermark unless more card content follows.
			if i == len(sections)-1 {
				y = max(y+4, statsFloor)
			} else {
				y += 4
			}
			y = renderGitHub(&buf, doc.GitHubStats, y, colors)
		}
	}

	if r.username != "" {
		fmt.Fprintf(&buf, `  <text x="%d" y="%d" fill="%s" font-size="10" text-anchor="end">man.dev/%s</text>`+"\n",
			Width-pad, Height-12, colors.Dim, escape(r.username))
	}
	buf.WriteString("</svg>\n")

	c.SVG = buf.Bytes()
	return c
}

// cardSections returns the present layout sections the card draws, in
// layout order. Unknown names are reported by the man page, not here.
func cardSections(doc *profile.Document) []string {
	var out []string
	for _, name := range layout.Present(doc) {
		switch name {
		case profile.SectionSkills:
			out = append(out, name)
		case profile.SectionGitHub:
			if doc.GitHub().Config.StatsEnabled() {
				out = append(out, name)
			}
		}
	}
	return out
}

func openCanvas(buf *bytes.Buffer, c theme.Colors) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="%s">`+"\n",
		Width, Height, Width, Height, fonts.FontFamily)
	fmt.Fprintf(buf, `  <rect width="%d" height="%d" rx="8" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		Width, Height, c.Background, c.Border)
}

func renderAvatar(buf *bytes.Buffer, href string, c theme.Colors) {
	fmt.Fprintf(buf, `  <defs><clipPath id="avatar-clip"><rect x="%d" y="%d" width="%d" height="%d" rx="4"/></clipPath></defs>`+"\n",
		pad, pad, avatarSize, avatarSize)
	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s"/>`+"\n",
		pad, pad, avatarSize, avatarSize, c.Border)
	fmt.Fprintf(buf, `  <image href="%s" x="%d" y="%d" width="%d" height="%d" clip-path="url(#avatar-clip)" preserveAspectRatio="xMidYMid slice"/>`+"\n",
		escape(href), pad, pad, avatarSize, avatarSize)
}

func renderSkills(buf *bytes.Buffer, skills []profile.Skill, y int, c theme.Colors, warns *render.Warnings) int {
	fmt.Fprintf(buf, `  <text x="%d" y="%d" fill="%s" font-size="10" font-weight="bold">SKILLS</text>`+"\n",
		pad, y, c.Accent)
	y += 16

	for i, s := range skills {
		if i == maxSkills {
			break
		}
		if _, ok := skill.FillRatio(s.Level); !ok {
			warns.Add("skill", "%q has unknown level %q", s.Name, s.Level)
		}
		fmt.Fprintf(buf, `  <text x="%d" y="%d" fill="%s" font-size="11">%s</text>`+"\n",
			pad, y+1, c.Foreground, escape(s.Name))

		track, fill := skill.SVGBarRects(s.Level, barX, y-7, barWidth, barHeight)
		writeRect(buf, track, c.Border)
		if fill.Width > 0 {
			writeRect(buf, fill, c.Accent)
		}
		y += 18
	}
	return y
}

func renderGitHub(buf *bytes.Buffer, gh *profile.GitHubStats, y int, c theme.Colors) int {
	fmt.Fprintf(buf, `  <text x="%d" y="%d" fill="%s" font-size="10" font-weight="bold">GITHUB</text>`+"\n",
		pad, y, c.Accent)
	y += 16
	line := fmt.Sprintf("★ %s  ·  repos: %s  ·  contrib: %s  ·  followers: %s",
		humanize.Comma(int64(gh.TotalStars)),
		humanize.Comma(int64(gh.TotalRepos)),
		humanize.Comma(int64(gh.TotalContributions)),
		humanize.Comma(int64(gh.Followers)))
	fmt.Fprintf(buf, `  <text x="%d" y="%d" fill="%s" font-size="11">%s</text>`+"\n",
		pad, y, c.Dim, escape(line))
	return y + 16
}

func writeRect(buf *bytes.Buffer, r skill.Rect, fill string) {
	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s"/>`+"\n",
		r.X, r.Y, r.Width, r.Height, fill)
}

// RenderNotFoundSVG renders the card served for a username with no profile.
func RenderNotFoundSVG(username string) []byte {
	return renderMessage("No manual entry for "+username, "man.dev/"+username)
}

// RenderErrorSVG renders a card carrying msg, used when the profile cannot
// be fetched.
func RenderErrorSVG(msg string) []byte {
	return renderMessage(msg, "man.dev")
}

func renderMessage(msg, footer string) []byte {
	c := theme.Resolve(theme.Default)
	var buf bytes.Buffer
	openCanvas(&buf, c)
	fmt.Fprintf(&buf, `  <text x="%d" y="%d" fill="%s" font-size="16" font-weight="bold" text-anchor="middle">%s</text>`+"\n",
		Width/2, Height/2, c.Foreground, escape(msg))
	fmt.Fprintf(&buf, `  <text x="%d" y="%d" fill="%s" font-size="10" text-anchor="end">%s</text>`+"\n",
		Width-pad, Height-12, c.Dim, escape(footer))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
