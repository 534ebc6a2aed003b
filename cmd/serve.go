// Package cmd — serve command.
// Starts the HTTP live preview server on top of the note store.
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/notepipe/core/preview"
	"github.com/gaurav-prasanna/notepipe/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live preview HTTP server",
	Long: `Serve exposes the preview renderer and the note store over HTTP.

Endpoints:
  POST   /api/preview                      raw text in, HTML fragment out
  POST   /api/toolbar                      apply a formatting snippet
  GET    /api/notes                        list notes
  POST   /api/notes                        create a note
  DELETE /api/notes                        delete all notes
  GET    /api/notes/{id}                   get a note
  PUT    /api/notes/{id}                   update a note
  DELETE /api/notes/{id}                   delete a note
  GET    /api/notes/{id}/preview           rendered note
  GET    /api/notes/{id}/export/{format}   download as md, html, pdf or json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8420)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	return server.New(preview.New(), st, logger).ListenAndServe(ctx, cfg.Server.Addr)
}
