package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/dispatch"
	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render/theme"
)

// initFilename is the file written by init.
const initFilename = ".mandev.toml"

type initOpts struct {
	name    string
	tagline string
	dir     string
}

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var opts initOpts

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter .mandev.toml",
		Long: `Create a starter .mandev.toml in the working directory.

The name and tagline come from --name and --tagline, or are asked for when
stdin is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.name == "" && isTerminal(os.Stdin) {
				in := bufio.NewReader(os.Stdin)
				opts.name = prompt(in, "Name")
				if opts.tagline == "" {
					opts.tagline = prompt(in, "Tagline")
				}
			}
			path, err := writeStarter(opts)
			if err != nil {
				return err
			}
			printSuccess("Created %s", path)
			printNextStep("Preview it", "mandev preview")
			printNextStep("Check it", "mandev doctor")
			printInfo("Publish it at %s", StyleLink.Render(dispatch.DefaultWebURL))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "your name")
	cmd.Flags().StringVar(&opts.tagline, "tagline", "", "one-line description")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "directory to create the file in")

	return cmd
}

// prompt asks for one line on stdout and returns it trimmed.
func prompt(in *bufio.Reader, label string) string {
	printInline("%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(line)
}

// starterDoc is the profile written by init.
func starterDoc(name, tagline string) *profile.Document {
	return &profile.Document{
		Profile: profile.Profile{Name: name, Tagline: tagline},
		Theme:   profile.Theme{Scheme: theme.Default, Font: "JetBrains Mono", Mode: "dark"},
		Layout:  profile.Layout{Sections: append([]string{}, profile.ContentSections...)},
		Skills: []profile.Skill{
			{Name: "Go", Level: profile.Advanced, Domain: "Languages"},
		},
	}
}

// writeStarter writes a starter profile into opts.dir. It refuses to
// overwrite an existing file.
func writeStarter(opts initOpts) (string, error) {
	if strings.TrimSpace(opts.name) == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "a name is required (use --name)")
	}
	path := filepath.Join(opts.dir, initFilename)
	if _, err := os.Stat(path); err == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
	}

	doc := starterDoc(strings.TrimSpace(opts.name), strings.TrimSpace(opts.tagline))
	if err := profile.Validate(doc); err != nil {
		return "", err
	}
	data, err := profile.MarshalTOML(doc)
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("# man.dev profile. Preview with `mandev preview`, publish at %s.\n\n", dispatch.DefaultWebURL)
	if err := writeFile(path, append([]byte(header), data...)); err != nil {
		return "", err
	}
	return path, nil
}
