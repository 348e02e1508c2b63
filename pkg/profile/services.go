package profile

// Block pairs a service's display config with its fetched stats. Either
// half may be nil.
type Block[C, S any] struct {
	Config *C
	Stats  *S
}

func (d *Document) GitHub() Block[GitHubConfig, GitHubStats] {
	return Block[GitHubConfig, GitHubStats]{d.GitHubConfig, d.GitHubStats}
}

func (d *Document) Npm() Block[NpmConfig, NpmStats] {
	return Block[NpmConfig, NpmStats]{d.NpmConfig, d.NpmStats}
}

func (d *Document) PyPI() Block[PyPIConfig, PyPIStats] {
	return Block[PyPIConfig, PyPIStats]{d.PyPIConfig, d.PyPIStats}
}

func (d *Document) DevTo() Block[DevToConfig, DevToStats] {
	return Block[DevToConfig, DevToStats]{d.DevToConfig, d.DevToStats}
}

func (d *Document) Hashnode() Block[HashnodeConfig, HashnodeStats] {
	return Block[HashnodeConfig, HashnodeStats]{d.HashnodeConfig, d.HashnodeStats}
}

const (
	defaultMaxPackages = 10
	defaultMaxArticles = 5
)

// on treats an unset toggle as enabled.
func on(b *bool) bool { return b == nil || *b }

func limit(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// Bool returns a pointer to b, for building configs in code.
func Bool(b bool) *bool { return &b }

// GitHubConfig controls which GitHub sections appear. Every toggle
// defaults to on; the accessors are safe on a nil receiver.
type GitHubConfig struct {
	Username      string `json:"username" toml:"username" yaml:"username"`
	ShowHeatmap   *bool  `json:"show_heatmap,omitempty" toml:"show_heatmap,omitempty" yaml:"show_heatmap,omitempty"`
	ShowStats     *bool  `json:"show_stats,omitempty" toml:"show_stats,omitempty" yaml:"show_stats,omitempty"`
	ShowLanguages *bool  `json:"show_languages,omitempty" toml:"show_languages,omitempty" yaml:"show_languages,omitempty"`
	ShowPinned    *bool  `json:"show_pinned,omitempty" toml:"show_pinned,omitempty" yaml:"show_pinned,omitempty"`
}

func (c *GitHubConfig) HeatmapEnabled() bool   { return c == nil || on(c.ShowHeatmap) }
func (c *GitHubConfig) StatsEnabled() bool     { return c == nil || on(c.ShowStats) }
func (c *GitHubConfig) LanguagesEnabled() bool { return c == nil || on(c.ShowLanguages) }
func (c *GitHubConfig) PinnedEnabled() bool    { return c == nil || on(c.ShowPinned) }

type NpmConfig struct {
	Username      string `json:"username" toml:"username" yaml:"username"`
	ShowPackages  *bool  `json:"show_packages,omitempty" toml:"show_packages,omitempty" yaml:"show_packages,omitempty"`
	ShowDownloads *bool  `json:"show_downloads,omitempty" toml:"show_downloads,omitempty" yaml:"show_downloads,omitempty"`
	MaxPackages   int    `json:"max_packages,omitempty" toml:"max_packages,omitempty" yaml:"max_packages,omitempty"`
}

func (c *NpmConfig) PackagesEnabled() bool  { return c == nil || on(c.ShowPackages) }
func (c *NpmConfig) DownloadsEnabled() bool { return c == nil || on(c.ShowDownloads) }

func (c *NpmConfig) PackageLimit() int {
	if c == nil {
		return defaultMaxPackages
	}
	return limit(c.MaxPackages, defaultMaxPackages)
}

// PyPIConfig lists packages explicitly; PyPI has no per-user listing.
type PyPIConfig struct {
	Packages      []string `json:"packages" toml:"packages" yaml:"packages"`
	ShowDownloads *bool    `json:"show_downloads,omitempty" toml:"show_downloads,omitempty" yaml:"show_downloads,omitempty"`
	MaxPackages   int      `json:"max_packages,omitempty" toml:"max_packages,omitempty" yaml:"max_packages,omitempty"`
}

func (c *PyPIConfig) DownloadsEnabled() bool { return c == nil || on(c.ShowDownloads) }

func (c *PyPIConfig) PackageLimit() int {
	if c == nil {
		return defaultMaxPackages
	}
	return limit(c.MaxPackages, defaultMaxPackages)
}

type DevToConfig struct {
	Username     string `json:"username" toml:"username" yaml:"username"`
	ShowArticles *bool  `json:"show_articles,omitempty" toml:"show_articles,omitempty" yaml:"show_articles,omitempty"`
	ShowStats    *bool  `json:"show_stats,omitempty" toml:"show_stats,omitempty" yaml:"show_stats,omitempty"`
	MaxArticles  int    `json:"max_articles,omitempty" toml:"max_articles,omitempty" yaml:"max_articles,omitempty"`
}

func (c *DevToConfig) ArticlesEnabled() bool { return c == nil || on(c.ShowArticles) }
func (c *DevToConfig) StatsEnabled() bool    { return c == nil || on(c.ShowStats) }

func (c *DevToConfig) ArticleLimit() int {
	if c == nil {
		return defaultMaxArticles
	}
	return limit(c.MaxArticles, defaultMaxArticles)
}

type HashnodeConfig struct {
	Username     string `json:"username" toml:"username" yaml:"username"`
	ShowArticles *bool  `json:"show_articles,omitempty" toml:"show_articles,omitempty" yaml:"show_articles,omitempty"`
	MaxArticles  int    `json:"max_articles,omitempty" toml:"max_articles,omitempty" yaml:"max_articles,omitempty"`
}

func (c *HashnodeConfig) ArticlesEnabled() bool { return c == nil || on(c.ShowArticles) }

func (c *HashnodeConfig) ArticleLimit() int {
	if c == nil {
		return defaultMaxArticles
	}
	return limit(c.MaxArticles, defaultMaxArticles)
}
