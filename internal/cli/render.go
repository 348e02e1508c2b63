package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/pipeline"
	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render/manpage"
	"github.com/matzehuels/mandev/pkg/store"
)

// renderOpts holds flags for the render command.
type renderOpts struct {
	formats string
	output  string
	user    string
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a profile as a man page, card or JSON",
		Long: `Render a profile to one or more formats.

The profile is read from the given file, from .mandev.toml in the working
directory, or with --user from the profile API.

A single text format (txt, ansi, json) goes to stdout unless -o is set.
Otherwise each format is written to <name><ext> in the -o directory.`,
		Example: `  mandev render
  mandev render -f svg,png -o out/
  mandev render --user janedev -f png -o janedev.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "txt", "output formats: txt, ansi, svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or directory")
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "render a published profile instead of a local file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the on-disk cache for --user")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	formats, err := pipeline.ParseFormats(strings.Split(opts.formats, ","))
	if err != nil {
		return err
	}

	results, name, err := c.renderAll(ctx, args, opts, formats)
	if err != nil {
		return err
	}

	if len(results) == 1 && opts.output == "" && isTextFormat(results[0].Format) {
		_, err := os.Stdout.Write(results[0].Body)
		return err
	}

	if err := errors.ValidatePath(name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "output name %q", name)
	}
	paths := outputPaths(opts.output, name, formats)
	for i, res := range results {
		if err := writeFile(paths[i], res.Body); err != nil {
			return err
		}
		printFile(paths[i])
		printResult(res)
	}
	return nil
}

// renderAll renders every format concurrently. It returns results in the
// order of formats and the base name for output files.
func (c *CLI) renderAll(ctx context.Context, args []string, opts renderOpts, formats []pipeline.Format) ([]*pipeline.Result, string, error) {
	runner, err := c.newRunner()
	if err != nil {
		return nil, "", err
	}

	var (
		doc  *profile.Document
		name = opts.user
	)
	if opts.user != "" {
		src, err := c.newSource(opts.noCache)
		if err != nil {
			return nil, "", err
		}
		spin := newSpinnerWithContext(ctx, "Fetching "+opts.user)
		spin.Start()
		entry, err := src.Fetch(ctx, opts.user)
		spin.Stop()
		if err != nil {
			return nil, "", err
		}
		runner.Source = fetched{entry}
	} else {
		var path string
		doc, path, err = loadProfile(args)
		if err != nil {
			return nil, "", err
		}
		c.Logger.Debug("loaded profile", "path", path)
		name = manpage.PageName(doc, "")
	}

	prog := newProgress(c.Logger)
	results := make([]*pipeline.Result, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		i, f := i, f
		g.Go(func() error {
			var err error
			if doc == nil {
				results[i], err = runner.Execute(gctx, pipeline.Options{Username: opts.user, Format: f})
			} else {
				results[i], err = runner.Render(gctx, doc, f)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	if len(formats) > 1 {
		prog.done("Rendered " + joinFormats(formats))
	}
	return results, name, nil
}

// fetched hands the same entry to every format rendered from one fetch.
type fetched struct{ entry *store.Entry }

func (f fetched) Fetch(context.Context, string) (*store.Entry, error) { return f.entry, nil }

// outputPaths maps each format to a destination. A single format with an
// -o that already carries an extension is written to exactly that file.
func outputPaths(output, name string, formats []pipeline.Format) []string {
	paths := make([]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[0] = output
		return paths
	}
	dir := output
	if dir == "" {
		dir = "."
	}
	for i, f := range formats {
		paths[i] = filepath.Join(dir, name+f.Ext())
	}
	return paths
}

func isTextFormat(f pipeline.Format) bool {
	return f == pipeline.FormatText || f == pipeline.FormatANSI || f == pipeline.FormatJSON
}

func joinFormats(formats []pipeline.Format) string {
	s := make([]string, len(formats))
	for i, f := range formats {
		s[i] = string(f)
	}
	return strings.Join(s, ", ")
}
