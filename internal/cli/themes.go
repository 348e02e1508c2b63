package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/render/theme"
)

// themesCommand creates the themes command.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the color schemes available for cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Card color schemes"))
			printInfo("Set %s in the [theme] table of your profile", StyleHighlight.Render("scheme"))
			printNewline()
			for _, name := range theme.Names() {
				fmt.Println(themeLine(name))
			}
			return nil
		},
	}
}

// themeLine renders "name  ██ ██ ██ ██  #bg" with one swatch per color.
func themeLine(name string) string {
	colors, _ := theme.Lookup(name)
	var swatches []string
	for _, hex := range []string{colors.Background, colors.Foreground, colors.Accent, colors.Dim, colors.Border} {
		swatches = append(swatches, lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██"))
	}
	label := name
	if name == theme.Default {
		label += " (default)"
	}
	return fmt.Sprintf("  %s %s  %s",
		StyleValue.Width(24).Render(label),
		strings.Join(swatches, " "),
		StyleDim.Render(colors.Accent))
}
