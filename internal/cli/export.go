package cli

import (
	"bytes"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/profile"
)

// exportJSONCommand creates the export-json command.
func (c *CLI) exportJSONCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "Print the canonical JSON config of a profile",
		Long: `Print the authored config of a profile as indented JSON with sorted
keys, the form the profile API stores.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadProfile(args)
			if err != nil {
				return err
			}
			data, err := profile.ConfigJSON(doc)
			if err != nil {
				return err
			}
			if output != "" {
				if err := writeFile(output, data); err != nil {
					return err
				}
				printFile(output)
				return nil
			}
			_, err = os.Stdout.Write(highlightJSON(data, isTerminal(os.Stdout)))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

// highlightJSON colors data for a terminal. Highlighting failures fall back
// to the plain bytes.
func highlightJSON(data []byte, tty bool) []byte {
	if !tty {
		return data
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(data), "json", "terminal256", "dracula"); err != nil {
		return data
	}
	return buf.Bytes()
}
