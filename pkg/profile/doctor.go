package profile

import (
	"fmt"
	"strings"
)

// Severity ranks a doctor finding.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Finding is one doctor observation.
type Finding struct {
	Severity Severity
	Message  string
}

// Report is the result of [Doctor].
type Report struct {
	Findings []Finding
}

// Passed reports whether there is nothing worse than a suggestion.
func (r Report) Passed() bool {
	for _, f := range r.Findings {
		if f.Severity != SeveritySuggestion {
			return false
		}
	}
	return true
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(r.Findings) == 0 {
		b.WriteString("All checks passed.\n")
		return b.String()
	}
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeveritySuggestion} {
		var lines []string
		for _, f := range r.Findings {
			if f.Severity == sev {
				lines = append(lines, "- "+f.Message)
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", headings[sev], strings.Join(lines, "\n"))
	}
	if r.Passed() {
		b.WriteString("Checks passed with suggestions.\n")
	}
	return b.String()
}

var headings = map[Severity]string{
	SeverityError:      "Errors",
	SeverityWarning:    "Warnings",
	SeveritySuggestion: "Suggestions",
}

// minAboutLength is the shortest about text that reads as a real bio.
const minAboutLength = 60

// Doctor checks doc for schema errors and content gaps.
func Doctor(doc *Document) Report {
	var r Report
	add := func(sev Severity, format string, args ...any) {
		r.Findings = append(r.Findings, Finding{Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	for _, is := range Check(doc) {
		add(SeverityError, "%s", is.String())
	}

	switch about := strings.TrimSpace(doc.Profile.About); {
	case about == "":
		add(SeverityWarning, "missing profile.about")
	case len(about) < minAboutLength:
		add(SeveritySuggestion, "profile.about is short (%d chars); aim for at least %d", len(about), minAboutLength)
	}

	if len(doc.Skills) == 0 {
		add(SeverityWarning, "no skills listed")
	}

	if len(doc.Projects) == 0 {
		add(SeverityWarning, "no projects listed")
	} else {
		missing := 0
		for _, p := range doc.Projects {
			if strings.TrimSpace(p.Description) == "" {
				missing++
			}
		}
		if missing > 0 {
			add(SeverityWarning, "%d project(s) missing descriptions", missing)
		}
	}

	for i, e := range doc.Experience {
		if e.Start != "" && !ValidDate(e.Start) {
			add(SeverityWarning, "experience[%d].start %q is not YYYY-MM", i, e.Start)
		}
		if e.End != "" && e.End != "present" && !ValidDate(e.End) {
			add(SeverityWarning, "experience[%d].end %q is not YYYY-MM", i, e.End)
		}
	}

	if len(doc.Links) == 0 {
		add(SeveritySuggestion, "no links listed; add at least a GitHub or website link")
	}
	if doc.Profile.Tagline == "" {
		add(SeveritySuggestion, "missing profile.tagline")
	}
	return r
}
