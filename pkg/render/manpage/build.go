package manpage

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render/layout"
	"github.com/matzehuels/mandev/pkg/render/skill"
)

const (
	bodyIndent   = 7
	detailIndent = 9
)

// Options configures [Build].
type Options struct {
	// Username names the page in the masthead. Defaults to the document's
	// username.
	Username string
	// Year printed in the footer. Defaults to the current year.
	Year int
	// BarWidth is the skill bar width in runes.
	BarWidth int
}

// Option mutates Options.
type Option func(*Options)

func WithUsername(u string) Option { return func(o *Options) { o.Username = u } }
func WithYear(y int) Option        { return func(o *Options) { o.Year = y } }
func WithBarWidth(w int) Option    { return func(o *Options) { o.BarWidth = w } }

// RenderText renders doc as a plain man page.
func RenderText(doc *profile.Document, opts ...Option) string {
	return Build(doc, opts...).Text()
}

// RenderANSI renders doc as a colored man page. Stripping the escapes
// yields exactly [RenderText].
func RenderANSI(doc *profile.Document, opts ...Option) string {
	return Build(doc, opts...).ANSI()
}

type builder struct {
	doc  *profile.Document
	opts Options
	page *Page
}

// Build lays out the man page for doc.
func Build(doc *profile.Document, opts ...Option) *Page {
	o := Options{BarWidth: skill.DefaultBarWidth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Year == 0 {
		o.Year = time.Now().Year()
	}

	b := &builder{doc: doc, opts: o, page: &Page{}}
	title := strings.ToUpper(PageName(doc, o.Username)) + "(7)"

	b.line(tok(RoleMasthead, title), text("  "), tok(RoleMasthead, "man.dev Manual"), text("  "), tok(RoleMasthead, title))
	b.blank()

	for _, s := range layout.OrderedSections(layout.Sections(doc), doc) {
		if !profile.KnownSection(s.Name) {
			b.page.Warnings.Add("layout", "unknown section %q", s.Name)
			continue
		}
		if s.Present {
			b.section(s.Name)
		}
	}

	b.line(tok(RoleMasthead, "man.dev"), text("  "), tok(RoleMasthead, strconv.Itoa(o.Year)), text("  "), tok(RoleMasthead, title))
	return b.page
}

// PageName picks the name shown in the masthead: an explicit name, the
// document username, the GitHub username, or a slug of the display name.
func PageName(doc *profile.Document, explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case doc.Username != "":
		return doc.Username
	case doc.GitHubConfig != nil && doc.GitHubConfig.Username != "":
		return doc.GitHubConfig.Username
	case doc.Profile.Name != "":
		return strings.Join(strings.Fields(strings.ToLower(doc.Profile.Name)), "-")
	}
	return "mandev"
}

func (b *builder) line(toks ...Token) { b.page.Lines = append(b.page.Lines, Line(toks)) }
func (b *builder) blank()             { b.line() }
func (b *builder) header(s string)    { b.line(tok(RoleHeader, s)) }

// detail emits an indented detail line, one per line of s.
func (b *builder) detail(role Role, s string) {
	for _, l := range strings.Split(s, "\n") {
		b.line(indent(detailIndent), tok(role, l))
	}
}

func (b *builder) section(name string) {
	switch name {
	case profile.SectionBio:
		b.bio()
	case profile.SectionSkills:
		b.skills()
	case profile.SectionProjects:
		b.projects()
	case profile.SectionExperience:
		b.experience()
	case profile.SectionLinks:
		b.links()
	case profile.SectionGitHub:
		b.github()
	case profile.SectionNpm:
		b.npm()
	case profile.SectionPyPI:
		b.pypi()
	case profile.SectionDevTo:
		b.devto()
	case profile.SectionHashnode:
		b.hashnode()
	}
}

func (b *builder) bio() {
	p := b.doc.Profile
	b.header("NAME")
	name := []Token{indent(bodyIndent), tok(RoleTitle, p.Name)}
	if p.Tagline != "" {
		name = append(name, text(" -- "), tok(RoleMeta, p.Tagline))
	}
	b.line(name...)
	b.blank()

	if p.About != "" {
		b.header("DESCRIPTION")
		for _, l := range strings.Split(p.About, "\n") {
			b.line(indent(bodyIndent), text(l))
		}
		b.blank()
	}
}

func (b *builder) skills() {
	skills := b.doc.Skills
	b.header("SKILLS")

	width := 0
	for _, s := range skills {
		width = max(width, ansi.StringWidth(s.Name))
	}

	groups, grouped := groupByDomain(skills)
	if !grouped {
		for _, s := range skills {
			b.skill(bodyIndent, s, width)
		}
	} else {
		for _, g := range groups {
			b.line(indent(bodyIndent), tok(RoleSubheader, "["+g.domain+"]"))
			for _, s := range g.skills {
				b.skill(detailIndent, s, width)
			}
		}
	}
	b.blank()
}

func (b *builder) skill(ind int, s profile.Skill, width int) {
	if _, ok := skill.FillRatio(s.Level); !ok {
		b.page.Warnings.Add("skill", "%q has unknown level %q", s.Name, s.Level)
	}
	level := string(s.Level)
	if level == "" {
		level = "unknown"
	}
	pad := strings.Repeat(" ", width-ansi.StringWidth(s.Name))
	b.line(
		indent(ind),
		tok(RoleTitle, s.Name),
		text(pad+" "),
		Token{Role: RoleBar, Text: skill.ASCIIBar(s.Level, b.opts.BarWidth), Level: s.Level},
		text(" "),
		tok(RoleLevel, level),
	)
}

// otherDomain collects undomained skills once any skill has a domain.
const otherDomain = "Other"

type skillGroup struct {
	domain string
	skills []profile.Skill
}

// groupByDomain groups skills by domain in first-appearance order, with
// undomained skills last. grouped is false when no skill has a domain.
func groupByDomain(skills []profile.Skill) (groups []skillGroup, grouped bool) {
	index := map[string]int{}
	var other []profile.Skill
	for _, s := range skills {
		if s.Domain == "" {
			other = append(other, s)
			continue
		}
		grouped = true
		i, ok := index[s.Domain]
		if !ok {
			i = len(groups)
			index[s.Domain] = i
			groups = append(groups, skillGroup{domain: s.Domain})
		}
		groups[i].skills = append(groups[i].skills, s)
	}
	if !grouped {
		return nil, false
	}
	if len(other) > 0 {
		if i, ok := index[otherDomain]; ok {
			groups[i].skills = append(groups[i].skills, other...)
		} else {
			groups = append(groups, skillGroup{domain: otherDomain, skills: other})
		}
	}
	return groups, true
}

func (b *builder) projects() {
	b.header("PROJECTS")
	for _, p := range b.doc.Projects {
		b.line(indent(bodyIndent), tok(RoleTitle, p.Name))
		if p.Description != "" {
			b.detail(RoleText, p.Description)
		}
		switch {
		case p.URL != "":
			b.detail(RoleURL, p.URL)
		case p.Repo != "":
			b.detail(RoleURL, p.Repo)
		}
	}
	b.blank()
}

func (b *builder) experience() {
	b.header("EXPERIENCE")
	for _, e := range b.doc.Experience {
		end := e.End
		if end == "" {
			end = "present"
		}
		b.line(
			indent(bodyIndent),
			tok(RoleTitle, e.Role),
			text(" at "+e.Company+" ("),
			tok(RoleMeta, e.Start+"-"+end),
			text(")"),
		)
		if e.Description != "" {
			b.detail(RoleText, e.Description)
		}
	}
	b.blank()
}

func (b *builder) links() {
	b.header("SEE ALSO")
	for _, l := range b.doc.Links {
		b.line(indent(bodyIndent), tok(RoleTitle, l.Label), text(": "), tok(RoleURL, l.URL))
	}
	b.blank()
}
