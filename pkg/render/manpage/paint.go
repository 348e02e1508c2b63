package manpage

import (
	"github.com/muesli/termenv"

	"github.com/matzehuels/mandev/pkg/profile"
)

// Plain is the identity painter.
type Plain struct{}

func (Plain) Paint(t Token) string { return t.Text }

// ANSI paints tokens with SGR escapes. Every styled token is closed with a
// reset, so no style leaks into the next token or line. Color support of
// the current terminal is not consulted; the output always uses the
// 16-color ANSI profile.
type ANSI struct{}

// Palette indices from the 16-color table.
const (
	colorGreen  = "2"
	colorYellow = "3"
	colorCyan   = "6"
	colorGray   = "8"
)

func (ANSI) Paint(t Token) string {
	if t.Text == "" {
		return ""
	}
	p := termenv.ANSI
	s := p.String()
	switch t.Role {
	case RoleMasthead, RoleTitle, RoleNumber, RoleSubheader:
		s = s.Bold()
	case RoleHeader:
		s = s.Bold().Foreground(p.Color(colorCyan))
	case RoleMeta, RoleLevel:
		s = s.Faint()
	case RoleURL:
		s = s.Underline()
	case RoleBar:
		s = s.Foreground(p.Color(levelColor(t.Level)))
	case RoleGauge:
		s = s.Foreground(p.Color(colorCyan))
	default:
		return t.Text
	}
	return s.Styled(t.Text)
}

func levelColor(l profile.SkillLevel) string {
	switch l {
	case profile.Expert:
		return colorGreen
	case profile.Advanced:
		return colorCyan
	case profile.Intermediate:
		return colorYellow
	}
	return colorGray
}
