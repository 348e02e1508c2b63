package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/profile"
	"github.com/matzehuels/mandev/pkg/render/layout"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a profile file against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := loadProfile(args)
			if err != nil {
				return err
			}
			issues := profile.Check(doc)
			if len(issues) == 0 {
				printSuccess("%s is valid", path)
				printKeyValue("name", doc.Profile.Name)
				printKeyValue("sections", strings.Join(layout.Present(doc), ", "))
				return nil
			}
			printError("%s has %d problem(s)", path, len(issues))
			for _, is := range issues {
				printDetail("%s", is)
			}
			return errors.New(errors.ErrCodeInvalidProfile, "validation failed")
		},
	}
}

// doctorCommand creates the doctor command.
func (c *CLI) doctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [file]",
		Short: "Report problems and gaps in a profile",
		Long: `Report schema errors, date problems and missing content in a profile.

Exits non-zero when there are errors or warnings; suggestions alone pass.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := loadProfile(args)
			if err != nil {
				return err
			}
			report := profile.Doctor(doc)
			out, err := renderMarkdown(report.Markdown("mandev doctor: "+path), isTerminal(os.Stdout))
			if err != nil {
				return err
			}
			fmt.Print(out)
			if !report.Passed() {
				return errors.New(errors.ErrCodeInvalidProfile, "doctor found problems")
			}
			return nil
		},
	}
}

// renderMarkdown styles md for the terminal. Without a terminal the
// markdown is returned as is.
func renderMarkdown(md string, tty bool) (string, error) {
	if !tty {
		return md, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(terminalWidth(80), 100)),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
