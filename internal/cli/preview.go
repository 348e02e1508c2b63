package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/pipeline"
	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render/manpage"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// clearScreen homes the cursor and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

type previewOpts struct {
	plain       bool
	watch       bool
	interactive bool
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Show the man page for a local profile",
		Long: `Show the man page for a local profile in the terminal.

Colors are used when stdout is a terminal; --plain forces plain text.
--watch re-renders whenever the file changes. --interactive opens a
scrollable pager.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				found, err := profile.FindConfig(".")
				if err != nil {
					return err
				}
				path = found
			}
			if opts.watch && opts.interactive {
				return fmt.Errorf("--watch and --interactive cannot be combined")
			}
			if !opts.plain && !isTerminal(os.Stdout) {
				opts.plain = true
			}
			return c.runPreview(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable colors")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the file changes")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "open in a scrollable pager")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, opts previewOpts) error {
	runner, err := c.newRunner()
	if err != nil {
		return err
	}

	page, doc, err := previewPage(ctx, runner, path, opts.plain)
	if err != nil {
		return err
	}

	switch {
	case opts.interactive:
		return runPager(manpage.PageName(doc, "")+"(1)", page)
	case opts.watch:
		fmt.Print(clearScreen + page)
		return c.watchPreview(ctx, runner, path, opts.plain)
	default:
		fmt.Print(page)
		return nil
	}
}

// previewPage renders path as a man page. The runner logs any warnings.
func previewPage(ctx context.Context, runner *pipeline.Runner, path string, plain bool) (string, *profile.Document, error) {
	doc, err := profile.LoadFile(path)
	if err != nil {
		return "", nil, err
	}
	f := pipeline.FormatANSI
	if plain {
		f = pipeline.FormatText
	}
	res, err := runner.Render(ctx, doc, f)
	if err != nil {
		return "", nil, err
	}
	return string(res.Body), doc, nil
}

// watchPreview redraws the page until ctx is cancelled. The directory is
// watched rather than the file so editors that save by rename keep working.
func (c *CLI) watchPreview(ctx context.Context, runner *pipeline.Runner, path string, plain bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	c.Logger.Debug("watching", "path", abs)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer = time.After(watchDebounce)
		case <-timer:
			timer = nil
			page, _, err := previewPage(ctx, runner, path, plain)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				continue
			}
			fmt.Print(clearScreen + page)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		}
	}
}
