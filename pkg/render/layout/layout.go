// Package layout decides which profile sections render and in what order.
//
// Every output format asks this package for the section sequence, which is
// what keeps the text page, the ANSI page and the SVG card in the same
// order.
package layout

import (
	"slices"

	"github.com/matzehuels/mandev/pkg/profile"
)

// Section is one entry of the ordered layout.
type Section struct {
	Name    string
	Present bool
}

// Default is the layout used when a document does not specify one. Service
// sections only appear when their stats exist.
var Default = append(append([]string{}, profile.ContentSections...), profile.ServiceSections...)

// Sections returns the requested section names for doc: its explicit
// layout, or [Default] when the layout is empty. An explicit layout that
// names no service section is followed by every service section, so
// fetched stats still show for profiles that only order their own content.
// Naming any service section makes the list authoritative.
func Sections(doc *profile.Document) []string {
	names := doc.Layout.Sections
	if len(names) == 0 {
		return Default
	}
	if slices.ContainsFunc(names, isService) {
		return names
	}
	out := make([]string, 0, len(names)+len(profile.ServiceSections))
	out = append(out, names...)
	return append(out, profile.ServiceSections...)
}

func isService(name string) bool { return slices.Contains(profile.ServiceSections, name) }

// OrderedSections walks names in order and marks each one present or
// absent for doc. Unknown names are kept and marked absent; repeated names
// keep only their first position.
func OrderedSections(names []string, doc *profile.Document) []Section {
	seen := make(map[string]bool, len(names))
	out := make([]Section, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, Section{Name: n, Present: HasContent(n, doc)})
	}
	return out
}

// Present returns the names of the sections that render for doc, in order.
func Present(doc *profile.Document) []string {
	var names []string
	for _, s := range OrderedSections(Sections(doc), doc) {
		if s.Present {
			names = append(names, s.Name)
		}
	}
	return names
}

// HasContent reports whether section name has anything to show for doc.
func HasContent(name string, doc *profile.Document) bool {
	switch name {
	case profile.SectionBio:
		return doc.Profile.Name != ""
	case profile.SectionSkills:
		return len(doc.Skills) > 0
	case profile.SectionProjects:
		return len(doc.Projects) > 0
	case profile.SectionExperience:
		return len(doc.Experience) > 0
	case profile.SectionLinks:
		return len(doc.Links) > 0
	case profile.SectionGitHub:
		gh := doc.GitHub()
		if gh.Stats == nil {
			return false
		}
		return gh.Config.StatsEnabled() ||
			(gh.Config.LanguagesEnabled() && len(gh.Stats.Languages) > 0) ||
			(gh.Config.PinnedEnabled() && len(gh.Stats.PinnedRepos) > 0)
	case profile.SectionNpm:
		return doc.NpmStats != nil
	case profile.SectionPyPI:
		return doc.PyPIStats != nil
	case profile.SectionDevTo:
		d := doc.DevTo()
		if d.Stats == nil {
			return false
		}
		return d.Config.StatsEnabled() || (d.Config.ArticlesEnabled() && len(d.Stats.Articles) > 0)
	case profile.SectionHashnode:
		return doc.HashnodeStats != nil
	}
	return false
}
