// Package cmd — export command.
// Writes a stored note to disk as Markdown, HTML, PDF or JSON, or the
// whole store as a JSON backup with --all.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/notepipe/core/export"
	"github.com/gaurav-prasanna/notepipe/core/output"
	"github.com/gaurav-prasanna/notepipe/core/preview"
	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportAll    bool
)

// backupName is the file name (without extension) of the --all backup.
const backupName = "notes-backup"

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a note to a file",
	Long: `Export writes a note to <title>.<ext> in the output directory.

Examples:
  notepipe export 1740830400000
  notepipe export 1740830400000 --format pdf --output_dir ./out
  notepipe export --all`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagExportAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "md", "Output format: md, html, pdf or json")
	exportCmd.Flags().BoolVar(&flagExportAll, "all", false, "Export every note as one JSON backup")
	exportCmd.Flags().String("output_dir", "", "Output directory (default: current directory)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	writer, err := output.New(cfg.Export.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if flagExportAll {
		notes, err := st.List(ctx)
		if err != nil {
			return err
		}
		exporter := export.NewJSONExporter()
		data, err := exporter.Backup(notes)
		if err != nil {
			return err
		}
		path, err := writer.Write(backupName, data, exporter.Extension())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%d notes)\n", path, len(notes))
		return nil
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	exporter, err := export.ForFormat(flagExportFormat, preview.New())
	if err != nil {
		return err
	}
	note, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	data, err := exporter.Export(note)
	if err != nil {
		return fmt.Errorf("exporting note %d: %w", id, err)
	}
	path, err := writer.Write(note.Title, data, exporter.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}
