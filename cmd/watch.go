// Package cmd — watch command.
// Re-renders a Markdown file to HTML every time it is saved.
package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gaurav-prasanna/notepipe/core/preview"
	"github.com/gaurav-prasanna/notepipe/watch"
	"github.com/spf13/cobra"
)

var (
	flagWatchOut        string
	flagWatchStandalone bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-render a Markdown file whenever it changes",
	Long: `Watch renders the file once and again after every save, writing the
preview HTML next to it (or to --out).

Examples:
  notepipe watch note.md
  notepipe watch note.md --out /tmp/preview.html --standalone --debounce 250ms`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&flagWatchOut, "out", "", "Output file (default: <file>.html)")
	watchCmd.Flags().BoolVar(&flagWatchStandalone, "standalone", true, "Write a full HTML document instead of a fragment")
	watchCmd.Flags().Duration("debounce", 0, "Quiet period before re-rendering (default 100ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	src := args[0]
	dst := flagWatchOut
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".html"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(preview.New(), logger, watch.Options{
		Debounce:   cfg.Watch.Debounce,
		Standalone: flagWatchStandalone,
	})
	return w.Run(ctx, src, dst)
}
