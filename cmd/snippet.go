// Package cmd — snippet command.
// Applies a toolbar formatting action to text, as the editor buttons do.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/notepipe/core/toolbar"
	"github.com/spf13/cobra"
)

var (
	flagSnippetText  string
	flagSnippetStart int
	flagSnippetEnd   int
)

var snippetCmd = &cobra.Command{
	Use:   "snippet <bold|italic|header|list|code|link>",
	Short: "Insert a formatting snippet into text",
	Long: `Snippet replaces the [start,end) rune range of --text with the action's
Markdown. With no selection the action's placeholder text is used.

Examples:
  notepipe snippet bold
  notepipe snippet link --text "see docs" --start 4 --end 8`,
	Args: cobra.ExactArgs(1),
	RunE: runSnippet,
}

func init() {
	rootCmd.AddCommand(snippetCmd)
	snippetCmd.Flags().StringVar(&flagSnippetText, "text", "", "Text to edit")
	snippetCmd.Flags().IntVar(&flagSnippetStart, "start", 0, "Selection start (runes)")
	snippetCmd.Flags().IntVar(&flagSnippetEnd, "end", 0, "Selection end (runes)")
}

func runSnippet(cmd *cobra.Command, args []string) error {
	action, err := toolbar.ParseAction(args[0])
	if err != nil {
		return err
	}
	text, _ := toolbar.Apply(flagSnippetText, flagSnippetStart, flagSnippetEnd, action)
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
