// Package cmd — import command.
// Loads a Markdown/HTML file or a web page and saves it as a note:
// fetch → extract → normalize → save.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/notepipe/core/extract"
	"github.com/gaurav-prasanna/notepipe/core/fetch"
	"github.com/gaurav-prasanna/notepipe/core/importer"
	"github.com/gaurav-prasanna/notepipe/core/normalize"
	"github.com/spf13/cobra"
)

var flagImportTitle string

var importCmd = &cobra.Command{
	Use:   "import <file|url>",
	Short: "Import a Markdown file, HTML file or web page as a note",
	Long: `Import saves the source as a new note. Markdown files are stored as-is
with the file name as title; HTML files and URLs are reduced to their main
content and converted to Markdown.

Examples:
  notepipe import ideas.md
  notepipe import https://example.com/article --title "Reading"`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&flagImportTitle, "title", "", "Title for the note (default: derived from the source)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	im := importer.New(fetch.New(), extract.New(), normalize.New())

	note, err := im.Import(ctx, args[0], flagImportTitle)
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.Save(ctx, note)
	if err != nil {
		return fmt.Errorf("saving imported note: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported: %q (id %d)\n", saved.Title, saved.ID)
	return nil
}
