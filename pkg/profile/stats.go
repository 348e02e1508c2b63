package profile

// Stats blocks are produced by the profile service's fetchers and are
// opaque to mandev: they are rendered as-is, never refreshed.

type GitHubStats struct {
	TotalStars         int               `json:"total_stars"`
	TotalRepos         int               `json:"total_repos"`
	Followers          int               `json:"followers"`
	TotalContributions int               `json:"total_contributions"`
	CurrentStreak      int               `json:"current_streak"`
	LongestStreak      int               `json:"longest_streak"`
	Languages          []GitHubLanguage  `json:"languages"`
	PinnedRepos        []GitHubRepo      `json:"pinned_repos"`
	Contributions      []ContributionDay `json:"contributions"`
	FetchedAt          string            `json:"fetched_at"`
}

type GitHubLanguage struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type GitHubRepo struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	Language      string `json:"language,omitempty"`
	LanguageColor string `json:"language_color,omitempty"`
	URL           string `json:"url"`
}

// ContributionDay is one day of the contribution calendar. Date is
// "YYYY-MM-DD".
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type NpmStats struct {
	TotalPackages        int          `json:"total_packages"`
	TotalWeeklyDownloads int          `json:"total_weekly_downloads"`
	Packages             []NpmPackage `json:"packages"`
	FetchedAt            string       `json:"fetched_at"`
}

type NpmPackage struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	Description     string `json:"description,omitempty"`
	WeeklyDownloads int    `json:"weekly_downloads"`
	URL             string `json:"url,omitempty"`
}

type PyPIStats struct {
	TotalPackages         int           `json:"total_packages"`
	TotalMonthlyDownloads int           `json:"total_monthly_downloads"`
	Packages              []PyPIPackage `json:"packages"`
	FetchedAt             string        `json:"fetched_at"`
}

type PyPIPackage struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	Description      string `json:"description,omitempty"`
	MonthlyDownloads int    `json:"monthly_downloads"`
	URL              string `json:"url,omitempty"`
}

type DevToStats struct {
	TotalArticles  int            `json:"total_articles"`
	TotalReactions int            `json:"total_reactions"`
	TotalComments  int            `json:"total_comments"`
	Articles       []DevToArticle `json:"articles"`
	FetchedAt      string         `json:"fetched_at"`
}

type DevToArticle struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	PublishedAt string   `json:"published_at"`
	Reactions   int      `json:"reactions"`
	Comments    int      `json:"comments"`
	ReadingTime int      `json:"reading_time"`
	Tags        []string `json:"tags,omitempty"`
}

type HashnodeStats struct {
	TotalArticles  int               `json:"total_articles"`
	TotalReactions int               `json:"total_reactions"`
	Articles       []HashnodeArticle `json:"articles"`
	FetchedAt      string            `json:"fetched_at"`
}

type HashnodeArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Reactions   int    `json:"reactions"`
	Brief       string `json:"brief,omitempty"`
}
