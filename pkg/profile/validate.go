package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/mandev/pkg/errors"
)

// Issue is a schema violation at a field path such as "skills[2].level".
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string { return i.Field + ": " + i.Message }

// Check returns every schema violation in doc, in document order.
func Check(doc *Document) []Issue {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(doc.Profile.Name) == "" {
		add("profile.name", "is required")
	}
	switch doc.Theme.Mode {
	case "", "dark", "light":
	default:
		add("theme.mode", "must be dark or light, got %q", doc.Theme.Mode)
	}
	for i, s := range doc.Layout.Sections {
		if !KnownSection(s) {
			add(fmt.Sprintf("layout.sections[%d]", i), "unknown section %q", s)
		}
	}
	for i, s := range doc.Skills {
		if s.Name == "" {
			add(fmt.Sprintf("skills[%d].name", i), "is required")
		}
		if !s.Level.Known() {
			add(fmt.Sprintf("skills[%d].level", i), "must be one of beginner, intermediate, advanced, expert, got %q", s.Level)
		}
	}
	for i, p := range doc.Projects {
		if p.Name == "" {
			add(fmt.Sprintf("projects[%d].name", i), "is required")
		}
	}
	for i, e := range doc.Experience {
		if e.Role == "" {
			add(fmt.Sprintf("experience[%d].role", i), "is required")
		}
		if e.Company == "" {
			add(fmt.Sprintf("experience[%d].company", i), "is required")
		}
		if e.Start == "" {
			add(fmt.Sprintf("experience[%d].start", i), "is required")
		}
	}
	for i, l := range doc.Links {
		if l.Label == "" {
			add(fmt.Sprintf("links[%d].label", i), "is required")
		}
		if l.URL == "" {
			add(fmt.Sprintf("links[%d].url", i), "is required")
		}
	}

	if c := doc.GitHubConfig; c != nil && c.Username == "" {
		add("github.username", "is required")
	}
	if c := doc.NpmConfig; c != nil {
		if c.Username == "" {
			add("npm.username", "is required")
		}
		if c.MaxPackages < 0 {
			add("npm.max_packages", "must not be negative")
		}
	}
	if c := doc.PyPIConfig; c != nil {
		if len(c.Packages) == 0 {
			add("pypi.packages", "must list at least one package")
		}
		if c.MaxPackages < 0 {
			add("pypi.max_packages", "must not be negative")
		}
	}
	if c := doc.DevToConfig; c != nil {
		if c.Username == "" {
			add("devto.username", "is required")
		}
		if c.MaxArticles < 0 {
			add("devto.max_articles", "must not be negative")
		}
	}
	if c := doc.HashnodeConfig; c != nil {
		if c.Username == "" {
			add("hashnode.username", "is required")
		}
		if c.MaxArticles < 0 {
			add("hashnode.max_articles", "must not be negative")
		}
	}
	return issues
}

// Validate returns an INVALID_PROFILE error listing every issue, or nil.
func Validate(doc *Document) error {
	issues := Check(doc)
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, is := range issues {
		msgs[i] = is.String()
	}
	return errors.New(errors.ErrCodeInvalidProfile, "%s", strings.Join(msgs, "; "))
}

var yearMonth = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidDate reports whether s is "YYYY-MM".
func ValidDate(s string) bool { return yearMonth.MatchString(s) }
