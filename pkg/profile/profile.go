package profile

// Document is a complete developer profile: identity, presentation
// settings, content sections and optional external-service blocks.
type Document struct {
	Username   string       `json:"username,omitempty" toml:"username,omitempty" yaml:"username,omitempty"`
	Profile    Profile      `json:"profile" toml:"profile" yaml:"profile"`
	Theme      Theme        `json:"theme" toml:"theme" yaml:"theme"`
	Layout     Layout       `json:"layout" toml:"layout" yaml:"layout"`
	Skills     []Skill      `json:"skills,omitempty" toml:"skills,omitempty" yaml:"skills,omitempty"`
	Projects   []Project    `json:"projects,omitempty" toml:"projects,omitempty" yaml:"projects,omitempty"`
	Experience []Experience `json:"experience,omitempty" toml:"experience,omitempty" yaml:"experience,omitempty"`
	Links      []Link       `json:"links,omitempty" toml:"links,omitempty" yaml:"links,omitempty"`

	GitHubConfig   *GitHubConfig   `json:"github,omitempty" toml:"github,omitempty" yaml:"github,omitempty"`
	NpmConfig      *NpmConfig      `json:"npm,omitempty" toml:"npm,omitempty" yaml:"npm,omitempty"`
	PyPIConfig     *PyPIConfig     `json:"pypi,omitempty" toml:"pypi,omitempty" yaml:"pypi,omitempty"`
	DevToConfig    *DevToConfig    `json:"devto,omitempty" toml:"devto,omitempty" yaml:"devto,omitempty"`
	HashnodeConfig *HashnodeConfig `json:"hashnode,omitempty" toml:"hashnode,omitempty" yaml:"hashnode,omitempty"`

	// Fetched by the profile service; never present in local files.
	GitHubStats   *GitHubStats   `json:"github_stats,omitempty" toml:"-" yaml:"-"`
	NpmStats      *NpmStats      `json:"npm_stats,omitempty" toml:"-" yaml:"-"`
	PyPIStats     *PyPIStats     `json:"pypi_stats,omitempty" toml:"-" yaml:"-"`
	DevToStats    *DevToStats    `json:"devto_stats,omitempty" toml:"-" yaml:"-"`
	HashnodeStats *HashnodeStats `json:"hashnode_stats,omitempty" toml:"-" yaml:"-"`

	GitHubVerified bool `json:"github_verified,omitempty" toml:"-" yaml:"-"`
	ViewCount      int  `json:"view_count,omitempty" toml:"-" yaml:"-"`
}

// Profile is the developer's identity.
type Profile struct {
	Name    string `json:"name" toml:"name" yaml:"name"`
	Tagline string `json:"tagline,omitempty" toml:"tagline,omitempty" yaml:"tagline,omitempty"`
	About   string `json:"about,omitempty" toml:"about,omitempty" yaml:"about,omitempty"`
	Avatar  string `json:"avatar,omitempty" toml:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Theme selects the card palette. Only Scheme and Accent affect rendering.
type Theme struct {
	Scheme string `json:"scheme,omitempty" toml:"scheme,omitempty" yaml:"scheme,omitempty"`
	Font   string `json:"font,omitempty" toml:"font,omitempty" yaml:"font,omitempty"`
	Mode   string `json:"mode,omitempty" toml:"mode,omitempty" yaml:"mode,omitempty"`
	Accent string `json:"accent,omitempty" toml:"accent,omitempty" yaml:"accent,omitempty"`
}

// Layout orders the sections. An empty list means the default order.
type Layout struct {
	Sections []string `json:"sections,omitempty" toml:"sections,omitempty" yaml:"sections,omitempty"`
}

// SkillLevel is a proficiency level.
type SkillLevel string

const (
	Beginner     SkillLevel = "beginner"
	Intermediate SkillLevel = "intermediate"
	Advanced     SkillLevel = "advanced"
	Expert       SkillLevel = "expert"
)

// Levels lists the known levels from lowest to highest.
var Levels = []SkillLevel{Beginner, Intermediate, Advanced, Expert}

// Known reports whether l is one of [Levels].
func (l SkillLevel) Known() bool {
	switch l {
	case Beginner, Intermediate, Advanced, Expert:
		return true
	}
	return false
}

type Skill struct {
	Name   string     `json:"name" toml:"name" yaml:"name"`
	Level  SkillLevel `json:"level" toml:"level" yaml:"level"`
	Domain string     `json:"domain,omitempty" toml:"domain,omitempty" yaml:"domain,omitempty"`
}

type Project struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url,omitempty" toml:"url,omitempty" yaml:"url,omitempty"`
	Repo        string `json:"repo,omitempty" toml:"repo,omitempty" yaml:"repo,omitempty"`
}

// Experience dates are "YYYY-MM". An empty End means the role is current.
type Experience struct {
	Role        string `json:"role" toml:"role" yaml:"role"`
	Company     string `json:"company" toml:"company" yaml:"company"`
	Start       string `json:"start" toml:"start" yaml:"start"`
	End         string `json:"end,omitempty" toml:"end,omitempty" yaml:"end,omitempty"`
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
}

type Link struct {
	Label string `json:"label" toml:"label" yaml:"label"`
	URL   string `json:"url" toml:"url" yaml:"url"`
	Icon  string `json:"icon,omitempty" toml:"icon,omitempty" yaml:"icon,omitempty"`
}

// Section names understood by the layout engine.
const (
	SectionBio        = "bio"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
	SectionExperience = "experience"
	SectionLinks      = "links"
	SectionGitHub     = "github"
	SectionNpm        = "npm"
	SectionPyPI       = "pypi"
	SectionDevTo      = "devto"
	SectionHashnode   = "hashnode"
)

// ContentSections are the sections authored in the profile itself.
var ContentSections = []string{SectionBio, SectionSkills, SectionProjects, SectionExperience, SectionLinks}

// ServiceSections are the sections backed by fetched stats.
var ServiceSections = []string{SectionGitHub, SectionNpm, SectionPyPI, SectionDevTo, SectionHashnode}

// KnownSection reports whether name is a content or service section.
func KnownSection(name string) bool {
	for _, s := range ContentSections {
		if s == name {
			return true
		}
	}
	for _, s := range ServiceSections {
		if s == name {
			return true
		}
	}
	return false
}
