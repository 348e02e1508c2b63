package manpage

import (
	"strconv"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/mandev/pkg/render/skill"
)

// activityDays is how many trailing contribution days the sparkline shows.
const activityDays = 30

func num(n int) Token { return tok(RoleNumber, FormatCount(n)) }

func (b *builder) github() {
	gh := b.doc.GitHub()
	st, cfg := gh.Stats, gh.Config

	if cfg.StatsEnabled() {
		b.header("GITHUB")
		b.line(indent(bodyIndent),
			num(st.TotalStars), text(" stars · "),
			num(st.TotalRepos), text(" repos · "),
			num(st.TotalContributions), text(" contributions · "),
			num(st.Followers), text(" followers"))
		if st.CurrentStreak > 0 || st.LongestStreak > 0 {
			b.line(indent(bodyIndent),
				text("streak: "), num(st.CurrentStreak), text(" days (longest: "),
				num(st.LongestStreak), text(" days)"))
		}
		if cfg.HeatmapEnabled() && len(st.Contributions) > 0 {
			days := st.Contributions[max(0, len(st.Contributions)-activityDays):]
			counts := make([]int, len(days))
			for i, d := range days {
				counts[i] = d.Count
			}
			b.line(indent(bodyIndent), text("activity: "), tok(RoleGauge, Sparkline(counts)))
		}
		b.blank()
	}

	if cfg.LanguagesEnabled() && len(st.Languages) > 0 {
		b.header("LANGUAGES")
		width := 0
		for _, l := range st.Languages {
			width = max(width, ansi.StringWidth(l.Name))
		}
		for _, l := range st.Languages {
			pad := width - ansi.StringWidth(l.Name)
			b.line(indent(bodyIndent),
				tok(RoleTitle, l.Name),
				indent(pad+1),
				tok(RoleGauge, skill.BarForRatio(l.Percentage/100, b.opts.BarWidth)),
				text(" "),
				tok(RoleNumber, strconv.FormatFloat(l.Percentage, 'f', 1, 64)+"%"))
		}
		b.blank()
	}

	if cfg.PinnedEnabled() && len(st.PinnedRepos) > 0 {
		b.header("PINNED REPOSITORIES")
		for _, r := range st.PinnedRepos {
			toks := []Token{indent(bodyIndent), tok(RoleTitle, r.Name),
				text("  ★ "), num(r.Stars), text("  forks "), num(r.Forks)}
			if r.Language != "" {
				toks = append(toks, text("  "), tok(RoleMeta, r.Language))
			}
			b.line(toks...)
			if r.Description != "" {
				b.detail(RoleText, r.Description)
			}
			if r.URL != "" {
				b.detail(RoleURL, r.URL)
			}
		}
		b.blank()
	}
}

func (b *builder) npm() {
	npm := b.doc.Npm()
	st, cfg := npm.Stats, npm.Config

	b.header("NPM PACKAGES")
	totals := []Token{indent(bodyIndent), num(st.TotalPackages), text(" packages")}
	if cfg.DownloadsEnabled() {
		totals = append(totals, text(" · "), num(st.TotalWeeklyDownloads), text(" weekly downloads"))
	}
	b.line(totals...)

	if cfg.PackagesEnabled() {
		for _, p := range capped(st.Packages, cfg.PackageLimit()) {
			b.pkg(p.Name, p.Version, p.WeeklyDownloads, "/week", cfg.DownloadsEnabled())
			if p.Description != "" {
				b.detail(RoleText, p.Description)
			}
		}
	}
	b.blank()
}

func (b *builder) pypi() {
	pypi := b.doc.PyPI()
	st, cfg := pypi.Stats, pypi.Config

	b.header("PYPI PACKAGES")
	totals := []Token{indent(bodyIndent), num(st.TotalPackages), text(" packages")}
	if cfg.DownloadsEnabled() {
		totals = append(totals, text(" · "), num(st.TotalMonthlyDownloads), text(" monthly downloads"))
	}
	b.line(totals...)

	for _, p := range capped(st.Packages, cfg.PackageLimit()) {
		b.pkg(p.Name, p.Version, p.MonthlyDownloads, "/month", cfg.DownloadsEnabled())
		if p.Description != "" {
			b.detail(RoleText, p.Description)
		}
	}
	b.blank()
}

func (b *builder) pkg(name, version string, downloads int, per string, showDownloads bool) {
	toks := []Token{indent(bodyIndent), tok(RoleTitle, name)}
	if version != "" {
		toks = append(toks, tok(RoleMeta, "@"+version))
	}
	if showDownloads {
		toks = append(toks, text("  "), num(downloads), text(per))
	}
	b.line(toks...)
}

func (b *builder) devto() {
	devto := b.doc.DevTo()
	st, cfg := devto.Stats, devto.Config

	b.header("DEV.TO")
	if cfg.StatsEnabled() {
		b.line(indent(bodyIndent),
			num(st.TotalArticles), text(" articles · "),
			num(st.TotalReactions), text(" reactions · "),
			num(st.TotalComments), text(" comments"))
	}
	if cfg.ArticlesEnabled() {
		for _, a := range capped(st.Articles, cfg.ArticleLimit()) {
			b.line(indent(bodyIndent), tok(RoleTitle, a.Title))
			b.line(indent(detailIndent),
				tok(RoleMeta, day(a.PublishedAt)), text(" · "),
				num(a.Reactions), text(" reactions · "),
				num(a.Comments), text(" comments"))
			if a.URL != "" {
				b.detail(RoleURL, a.URL)
			}
		}
	}
	b.blank()
}

func (b *builder) hashnode() {
	hn := b.doc.Hashnode()
	st, cfg := hn.Stats, hn.Config

	b.header("HASHNODE")
	b.line(indent(bodyIndent),
		num(st.TotalArticles), text(" articles · "),
		num(st.TotalReactions), text(" reactions"))
	if cfg.ArticlesEnabled() {
		for _, a := range capped(st.Articles, cfg.ArticleLimit()) {
			b.line(indent(bodyIndent), tok(RoleTitle, a.Title))
			if a.Brief != "" {
				b.detail(RoleText, a.Brief)
			}
			if a.URL != "" {
				b.detail(RoleURL, a.URL)
			}
		}
	}
	b.blank()
}

func capped[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// day trims an ISO-8601 timestamp to its date.
func day(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
