// Package cmd — notes commands.
// List, show, save and delete notes in the configured store.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/gaurav-prasanna/notepipe/core"
	"github.com/gaurav-prasanna/notepipe/core/preview"
	"github.com/spf13/cobra"
)

var (
	flagShowPreview bool
	flagSaveID      int64
	flagSaveTitle   string
	flagSaveFile    string
	flagSaveContent string
	flagWipeYes     bool
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage stored notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored notes",
	Args:  cobra.NoArgs,
	RunE:  runNotesList,
}

var notesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note's Markdown (or its preview with --preview)",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesShow,
}

var notesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create a note, or update one with --id",
	Long: `Save stores a note. A blank title becomes "Untitled Note N".

Examples:
  notepipe notes save --title "Groceries" --content "- milk"
  notepipe notes save --file draft.md
  notepipe notes save --id 1740830400000 --file draft.md`,
	Args: cobra.NoArgs,
	RunE: runNotesSave,
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesDelete,
}

var notesWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete ALL notes (requires --yes)",
	Args:  cobra.NoArgs,
	RunE:  runNotesWipe,
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesListCmd, notesShowCmd, notesSaveCmd, notesDeleteCmd, notesWipeCmd)

	notesShowCmd.Flags().BoolVar(&flagShowPreview, "preview", false, "Print the rendered HTML instead of Markdown")

	notesSaveCmd.Flags().Int64Var(&flagSaveID, "id", 0, "Id of the note to update")
	notesSaveCmd.Flags().StringVar(&flagSaveTitle, "title", "", "Note title")
	notesSaveCmd.Flags().StringVar(&flagSaveFile, "file", "", "Read content from this file")
	notesSaveCmd.Flags().StringVar(&flagSaveContent, "content", "", "Note content")
	notesSaveCmd.MarkFlagsMutuallyExclusive("file", "content")

	notesWipeCmd.Flags().BoolVar(&flagWipeYes, "yes", false, "Confirm deleting every note; this cannot be undone")
}

func runNotesList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	notes, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notes saved yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUPDATED\tTITLE")
	for _, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", n.ID, n.Updated.Local().Format("2006-01-02 15:04"), n.Title)
	}
	return tw.Flush()
}

func runNotesShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	note, err := st.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if flagShowPreview {
		fmt.Fprintln(cmd.OutOrStdout(), preview.Render(note.Content))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), note.Content)
	return nil
}

func runNotesSave(cmd *cobra.Command, args []string) error {
	content := flagSaveContent
	if flagSaveFile != "" {
		data, err := os.ReadFile(flagSaveFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", flagSaveFile, err)
		}
		content = string(data)
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.Save(cmd.Context(), core.Note{ID: flagSaveID, Title: flagSaveTitle, Content: content})
	if errors.Is(err, core.ErrNothingToSave) {
		return fmt.Errorf("nothing to save: both title and content are empty")
	}
	if err != nil {
		return err
	}
	logger.WithField("id", saved.ID).Debug("note saved")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved: %q (id %d)\n", saved.Title, saved.ID)
	return nil
}

func runNotesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted: %d\n", id)
	return nil
}

func runNotesWipe(cmd *cobra.Command, args []string) error {
	if !flagWipeYes {
		return fmt.Errorf("refusing to delete all notes without --yes")
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteAll(cmd.Context()); err != nil {
		return err
	}
	logger.Warn("all notes deleted")
	fmt.Fprintln(cmd.OutOrStdout(), "✓ All notes deleted")
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", raw)
	}
	return id, nil
}
