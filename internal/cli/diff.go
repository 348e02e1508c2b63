package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/profile"
)

var (
	styleDiffAdd = lipgloss.NewStyle().Foreground(colorGreen)
	styleDiffDel = lipgloss.NewStyle().Foreground(colorRed)
)

type diffOpts struct {
	user    string
	noCache bool
}

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var opts diffOpts

	cmd := &cobra.Command{
		Use:   "diff [file]",
		Short: "Compare a local profile with the published one",
		Long: `Compare the config of a local profile with the published profile.

Both sides are reduced to their canonical config JSON first, so stats and
other service-managed fields never show up as differences. Exits non-zero
when the two differ.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "published username (default: the file's github.username)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", true, "always fetch the current published profile")

	return cmd
}

func (c *CLI) runDiff(ctx context.Context, args []string, opts diffOpts) error {
	doc, path, err := loadProfile(args)
	if err != nil {
		return err
	}
	user := opts.user
	if user == "" && doc.GitHubConfig != nil {
		user = doc.GitHubConfig.Username
	}
	if user == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--user is required when the profile has no github.username")
	}

	local, err := profile.ConfigJSON(doc)
	if err != nil {
		return err
	}

	src, err := c.newSource(opts.noCache)
	if err != nil {
		return err
	}
	spin := newSpinnerWithContext(ctx, "Fetching "+user)
	spin.Start()
	entry, err := src.Fetch(ctx, user)
	if err != nil {
		spin.StopWithError("Failed to fetch remote profile")
		return err
	}
	spin.StopWithSuccess("Fetched " + user)

	remote, err := profile.ConfigJSON(entry.Document)
	if err != nil {
		return err
	}

	d := lineDiff(string(remote), string(local))
	if d == "" {
		printSuccess("No differences")
		return nil
	}
	fmt.Print(colorDiff(fmt.Sprintf("--- %s (published)\n+++ %s\n", user, path)+d, isTerminal(os.Stdout)))
	return errors.New(errors.ErrCodeInvalidInput, "Differences found")
}

// lineDiff returns a line-oriented diff of a and b with "-", "+" and " "
// prefixes, or "" when they are equal.
func lineDiff(a, b string) string {
	if a == b {
		return ""
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

// colorDiff paints added and removed lines when tty is set.
func colorDiff(d string, tty bool) string {
	if !tty {
		return d
	}
	lines := strings.SplitAfter(d, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = styleDiffAdd.Render(strings.TrimSuffix(line, "\n")) + "\n"
		case strings.HasPrefix(line, "-"):
			lines[i] = styleDiffDel.Render(strings.TrimSuffix(line, "\n")) + "\n"
		}
	}
	return strings.Join(lines, "")
}
