package manpage

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render"
)

// Role tags a token with what it means, not how it looks.
type Role int

const (
	RoleText      Role = iota // unstyled, also used for indentation
	RoleMasthead              // header and footer lines
	RoleHeader                // section headers such as "SKILLS"
	RoleSubheader             // skill domain groups
	RoleTitle                 // item names
	RoleMeta                  // taglines, dates, versions
	RoleURL
	RoleNumber
	RoleBar   // skill bar; Level selects the color
	RoleGauge // percentage and activity bars
	RoleLevel // the level word after a skill bar
)

// Token is a run of text with a single role.
type Token struct {
	Role  Role
	Text  string
	Level profile.SkillLevel
}

// Line is one output line.
type Line []Token

// Page is a laid-out man page.
type Page struct {
	Lines    []Line
	Warnings render.Warnings
}

// Painter converts a token to output bytes.
type Painter interface {
	Paint(Token) string
}

// Paint renders every line with p. Lines are joined by "\n" and the page
// ends with a newline after the footer.
func (pg *Page) Paint(p Painter) string {
	var b strings.Builder
	for _, line := range pg.Lines {
		for _, t := range line {
			b.WriteString(p.Paint(t))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Text is shorthand for pg.Paint(Plain{}).
func (pg *Page) Text() string { return pg.Paint(Plain{}) }

// ANSI is shorthand for pg.Paint(ANSI{}).
func (pg *Page) ANSI() string { return pg.Paint(ANSI{}) }

func tok(r Role, s string) Token { return Token{Role: r, Text: clean(s)} }
func text(s string) Token        { return tok(RoleText, s) }
func indent(n int) Token         { return text(strings.Repeat(" ", n)) }

// clean removes escape sequences and control runes from profile text so
// that neither painter can emit terminal state the page did not set.
func clean(s string) string {
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}
