// Package cmd — render command.
// Prints the live-preview HTML fragment for a file or stdin.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gaurav-prasanna/notepipe/core/export"
	"github.com/gaurav-prasanna/notepipe/core/preview"
	"github.com/spf13/cobra"
)

var flagStandalone bool

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render Markdown to the preview HTML fragment",
	Long: `Render reads Markdown from a file (or stdin when the argument is "-" or
missing) and prints the preview HTML.

Examples:
  notepipe render note.md
  echo "**hi**" | notepipe render
  notepipe render note.md --standalone > note.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&flagStandalone, "standalone", false, "Wrap the fragment in a full HTML document")
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
		name = "note"
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		name = args[0]
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	out := preview.Render(string(data))
	if flagStandalone {
		page, err := export.Page(name, out)
		if err != nil {
			return err
		}
		out = string(page)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
